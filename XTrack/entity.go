// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XTrack

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/beego/beego/v2/client/orm"
	"github.com/eframework-org/GO.UTIL/XCollect"
	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/prometheus/client_golang/prometheus"
)

// IEntity 定义了可被追踪的实体接口。
// 实现此接口的类型必须是结构体指针，并通过 Register 注册后才能被上下文追踪。
type IEntity interface {
	// AliasName 返回数据库别名，必须与追踪它的上下文一致。
	AliasName() string

	// TableName 返回数据表名称。
	TableName() string
}

// IOwned 定义了从属实体的接口。
// 从属实体通过父实体的导航列表被追踪，保存时由上下文写入所属关系。
type IOwned interface {
	IEntity

	// Own 设置所属关系，owner 的格式为 "父表名.导航名"，id 为父实体的主键。
	Own(owner string, id int)
}

var ownedType = reflect.TypeOf((*IOwned)(nil)).Elem()

// schemaField 定义了映射字段的描述信息。
type schemaField struct {
	name   string // 字段名
	column string // 列名
	index  []int  // 字段索引
}

// schemaNavigation 定义了导航列表的描述信息。
type schemaNavigation struct {
	name  string       // 导航名称，取自 track 标签
	field string       // 字段名
	index []int        // 字段索引
	elem  reflect.Type // 元素类型（结构体指针）
}

// entitySchema 定义了实体的描述信息，在注册时通过反射生成。
type entitySchema struct {
	typ     reflect.Type
	alias   string
	table   string
	pk      *schemaField
	columns []*schemaField
	navs    []*schemaNavigation

	tracked prometheus.Counter
	created prometheus.Counter
	updated prometheus.Counter
}

var (
	// schemaCache 存储实体的描述信息，键为实体的指针类型。
	schemaCache = XCollect.NewMap()

	// schemaMutex 用于保护注册过程。
	schemaMutex sync.Mutex
)

// Register 注册实体。
// 函数会向 beego orm 注册模型并解析实体的主键、映射列和导航列表。
// 如果实体为 nil、重复注册或缺少主键，将触发 panic。
// 注册必须在首次访问数据库之前完成。
func Register(models ...IEntity) {
	schemaMutex.Lock()
	defer schemaMutex.Unlock()

	for _, model := range models {
		if model == nil || reflect.ValueOf(model).IsNil() {
			XLog.Panic("XTrack.Register: nil entity instance.")
			return
		}
		typ := reflect.TypeOf(model)
		if typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
			XLog.Panic("XTrack.Register: entity of %v must be a pointer to struct.", typ)
			return
		}
		if _, loaded := schemaCache.Load(typ); loaded {
			XLog.Panic("XTrack.Register: duplicated entity of %v.", typ)
			return
		}

		schema := parseSchema(model)
		if schema.pk == nil {
			XLog.Panic("XTrack.Register: primary key of %v was not found.", schema.table)
			return
		}

		orm.RegisterModel(model)
		schema.tracked = sharedMetrics.tracked.WithLabelValues(schema.table)
		schema.created = sharedMetrics.saved.WithLabelValues(schema.table, "create")
		schema.updated = sharedMetrics.saved.WithLabelValues(schema.table, "update")
		schemaCache.Store(typ, schema)
	}
}

// Cleanup 重置实体注册信息，仅用于测试。
func Cleanup() {
	schemaMutex.Lock()
	defer schemaMutex.Unlock()

	schemaCache = XCollect.NewMap()
	orm.ResetModelCache()
}

// getSchema 获取实体的描述信息，未注册则返回 nil。
func getSchema(entity IEntity) *entitySchema {
	if entity == nil {
		return nil
	}
	if value, _ := schemaCache.Load(reflect.TypeOf(entity)); value != nil {
		return value.(*entitySchema)
	}
	return nil
}

// parseSchema 解析实体的结构体字段。
//
//	orm:"-"              忽略字段
//	orm:"column(x);pk"   主键
//	track:"name"         导航列表，必须为从属实体的切片
func parseSchema(model IEntity) *entitySchema {
	typ := reflect.TypeOf(model).Elem()
	schema := &entitySchema{typ: typ, alias: model.AliasName(), table: model.TableName()}

	var implicit *schemaField
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() || sf.Anonymous {
			continue
		}

		if nav := sf.Tag.Get("track"); nav != "" {
			if sf.Type.Kind() != reflect.Slice || sf.Type.Elem().Kind() != reflect.Ptr || !sf.Type.Elem().Implements(ownedType) {
				XLog.Panic("XTrack.Register: navigation %v of %v must be a slice of owned entities.", sf.Name, schema.table)
				return schema
			}
			schema.navs = append(schema.navs, &schemaNavigation{name: nav, field: sf.Name, index: sf.Index, elem: sf.Type.Elem()})
			continue
		}

		tag := sf.Tag.Get("orm")
		if tag == "-" {
			continue
		}
		if !sf.Type.Comparable() {
			XLog.Panic("XTrack.Register: column %v of %v is not comparable.", sf.Name, schema.table)
			return schema
		}

		field := &schemaField{name: sf.Name, column: parseColumn(sf.Name, tag), index: sf.Index}
		if hasOption(tag, "pk") {
			if schema.pk != nil {
				schema.columns = append(schema.columns, schema.pk)
			}
			schema.pk = field
			continue
		}
		if implicit == nil && schema.pk == nil && field.column == "id" {
			implicit = field
			continue
		}
		schema.columns = append(schema.columns, field)
	}

	if schema.pk == nil {
		schema.pk = implicit
	} else if implicit != nil {
		schema.columns = append(schema.columns, implicit)
	}
	return schema
}

// parseColumn 解析 column(x) 选项，未指定时使用字段名的蛇形命名。
func parseColumn(name, tag string) string {
	for _, option := range strings.Split(tag, ";") {
		option = strings.TrimSpace(option)
		if strings.HasPrefix(option, "column(") && strings.HasSuffix(option, ")") {
			return option[len("column(") : len(option)-1]
		}
	}
	return snakeString(name)
}

func hasOption(tag, option string) bool {
	for _, opt := range strings.Split(tag, ";") {
		if strings.TrimSpace(opt) == option {
			return true
		}
	}
	return false
}

func snakeString(name string) string {
	var sb strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// values 返回实体所有映射列（不含主键）的当前值。
func (s *entitySchema) values(entity IEntity) []any {
	ind := reflect.ValueOf(entity).Elem()
	values := make([]any, len(s.columns))
	for i, field := range s.columns {
		values[i] = ind.FieldByIndex(field.index).Interface()
	}
	return values
}

// identity 返回实体的主键值。
func (s *entitySchema) identity(entity IEntity) int {
	return int(reflect.ValueOf(entity).Elem().FieldByIndex(s.pk.index).Int())
}

// children 返回导航列表中的非空从属实体。
func (s *entitySchema) children(entity IEntity, nav *schemaNavigation) []IOwned {
	list := reflect.ValueOf(entity).Elem().FieldByIndex(nav.index)
	if list.Len() == 0 {
		return nil
	}
	rets := make([]IOwned, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		elem := list.Index(i)
		if elem.IsNil() {
			continue
		}
		rets = append(rets, elem.Interface().(IOwned))
	}
	return rets
}
