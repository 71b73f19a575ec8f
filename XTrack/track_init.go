// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XTrack

import (
	"strings"

	"github.com/beego/beego/v2/client/orm"
	"github.com/eframework-org/GO.UTIL/XLog"
	"github.com/eframework-org/GO.UTIL/XPrefs"
	"github.com/eframework-org/GO.UTIL/XString"
	"github.com/pkg/errors"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

const (
	// DefaultAlias 是默认的数据库别名，beego orm 要求必须存在该别名。
	DefaultAlias = "default"

	prefsOrmSource  = "Orm/Source/"
	prefsOrmAddr    = "Addr"
	prefsOrmPool    = "Pool"
	prefsOrmConn    = "Conn"
	prefsTrackTrace = "Track/Trace"
)

// traceContext 表示是否输出上下文的生命周期日志。
var traceContext bool

func init() {
	initTrack(XPrefs.Asset())
}

// Setup 使用指定的首选项注册数据库，已注册的别名不可重复注册。
func Setup(prefs XPrefs.IBase) { initTrack(prefs) }

// initTrack 根据首选项注册数据源。
// 配置键名格式为 Orm/Source/<数据库类型>/<数据库别名>，参数包括 Addr、Pool 和 Conn。
func initTrack(prefs XPrefs.IBase) {
	if prefs == nil {
		XLog.Panic("XTrack.Init: prefs is nil.")
		return
	}

	traceContext = prefs.GetInt(prefsTrackTrace, 0) > 0

	for _, key := range prefs.Keys() {
		if !strings.HasPrefix(key, prefsOrmSource) {
			continue
		}
		parts := strings.Split(key, "/")
		if len(parts) != 4 || XString.IsEmpty(parts[2]) || XString.IsEmpty(parts[3]) {
			XLog.Panic("XTrack.Init: invalid prefs key %v.", key)
			return
		}

		ormType := strings.ToLower(parts[2])
		ormAlias := parts[3]

		if base, ok := prefs.Get(key).(XPrefs.IBase); ok && base != nil {
			ormAddr := base.GetString(prefsOrmAddr)
			ormPool := base.GetInt(prefsOrmPool, 1)
			ormConn := base.GetInt(prefsOrmConn, 1)
			if err := orm.RegisterDataBase(ormAlias, ormType, ormAddr,
				orm.MaxIdleConnections(ormPool),
				orm.MaxOpenConnections(ormConn)); err != nil {
				XLog.Panic("XTrack.Init: register database %v failed, err: %v", ormAlias, err)
				return
			}
			XLog.Notice("XTrack.Init: database %v of %v has been registered.", ormAlias, ormType)
		} else {
			XLog.Error("XTrack.Init: invalid config for %v.", key)
			continue
		}
	}
}

// Sync 创建已注册实体缺失的数据表，已存在的数据表不会被修改。
func Sync(alias ...string) error {
	name := DefaultAlias
	if len(alias) > 0 && !XString.IsEmpty(alias[0]) {
		name = alias[0]
	}
	if _, err := orm.GetDB(name); err != nil {
		return errors.Wrapf(err, "XTrack.Sync: database %v", name)
	}
	return errors.Wrapf(orm.RunSyncdb(name, false, false), "XTrack.Sync: database %v", name)
}
