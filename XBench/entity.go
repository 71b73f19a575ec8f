// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import (
	"github.com/eframework-org/GO.BENCH/XTrack"
	"github.com/eframework-org/GO.UTIL/XObject"
)

// ZeroRelation 是没有导航列表的实体。
type ZeroRelation struct {
	NotMapped bool   `orm:"-"`
	ID        int    `orm:"column(id);pk;auto"`
	Col1      int    `orm:"column(col1)"`
	Col2      int    `orm:"column(col2)"`
	Col3      int    `orm:"column(col3)"`
	Col4      int    `orm:"column(col4)"`
	Col5      int    `orm:"column(col5)"`
	Col6      string `orm:"column(col6);size(255);null"`
	Col7      string `orm:"column(col7);size(255);null"`
	Col8      string `orm:"column(col8);size(255);null"`
	Col9      string `orm:"column(col9);size(255);null"`
	Col10     string `orm:"column(col10);size(255);null"`
}

// AliasName 返回实体所在的数据库别名。
func (e *ZeroRelation) AliasName() string { return XTrack.DefaultAlias }

// TableName 返回实体的数据表名称。
func (e *ZeroRelation) TableName() string { return "zero_relation" }

// NewZeroRelation 创建一个不带导航列表的实体，主键和列值均为零值。
func NewZeroRelation() *ZeroRelation { return XObject.New[ZeroRelation]() }

// OneRelation 是带有一个导航列表的实体。
type OneRelation struct {
	NotMapped      bool           `orm:"-"`
	ID             int            `orm:"column(id);pk;auto"`
	Col1           int            `orm:"column(col1)"`
	Col2           int            `orm:"column(col2)"`
	Col3           int            `orm:"column(col3)"`
	Col4           int            `orm:"column(col4)"`
	Col5           int            `orm:"column(col5)"`
	Col6           string         `orm:"column(col6);size(255);null"`
	Col7           string         `orm:"column(col7);size(255);null"`
	Col8           string         `orm:"column(col8);size(255);null"`
	Col9           string         `orm:"column(col9);size(255);null"`
	Col10          string         `orm:"column(col10);size(255);null"`
	FirstRelations []*RelationOne `orm:"-" track:"first"`
}

// AliasName 返回实体所在的数据库别名。
func (e *OneRelation) AliasName() string { return XTrack.DefaultAlias }

// TableName 返回实体的数据表名称。
func (e *OneRelation) TableName() string { return "one_relation" }

// NewOneRelation 创建一个带有一个导航列表的实体，主键和列值均为零值。
func NewOneRelation() *OneRelation { return XObject.New[OneRelation]() }

// TwoRelation 是带有两个导航列表的实体。
type TwoRelation struct {
	NotMapped       bool           `orm:"-"`
	ID              int            `orm:"column(id);pk;auto"`
	Col1            int            `orm:"column(col1)"`
	Col2            int            `orm:"column(col2)"`
	Col3            int            `orm:"column(col3)"`
	Col4            int            `orm:"column(col4)"`
	Col5            int            `orm:"column(col5)"`
	Col6            string         `orm:"column(col6);size(255);null"`
	Col7            string         `orm:"column(col7);size(255);null"`
	Col8            string         `orm:"column(col8);size(255);null"`
	Col9            string         `orm:"column(col9);size(255);null"`
	Col10           string         `orm:"column(col10);size(255);null"`
	FirstRelations  []*RelationOne `orm:"-" track:"first"`
	SecondRelations []*RelationOne `orm:"-" track:"second"`
}

// AliasName 返回实体所在的数据库别名。
func (e *TwoRelation) AliasName() string { return XTrack.DefaultAlias }

// TableName 返回实体的数据表名称。
func (e *TwoRelation) TableName() string { return "two_relation" }

// NewTwoRelation 创建一个带有两个导航列表的实体，主键和列值均为零值。
func NewTwoRelation() *TwoRelation { return XObject.New[TwoRelation]() }

// RelationOne 是导航列表中的从属实体，只有所属关系的列，由保存操作填充。
type RelationOne struct {
	ID      int    `orm:"column(id);pk;auto"`
	OwnerID int    `orm:"column(owner_id);index"`
	Owner   string `orm:"column(owner);size(64)"`
}

// AliasName 返回实体所在的数据库别名。
func (e *RelationOne) AliasName() string { return XTrack.DefaultAlias }

// TableName 返回实体的数据表名称，所有形态的从属实体共用此表。
func (e *RelationOne) TableName() string { return "relation_one" }

// Own 记录所属实体，owner 为 "<所属实体数据表>.<导航列表名称>"，id 为所属实体的主键。
func (e *RelationOne) Own(owner string, id int) { e.Owner, e.OwnerID = owner, id }

// NewRelationOne 创建一个从属实体，所属关系在保存时填充。
func NewRelationOne() *RelationOne { return XObject.New[RelationOne]() }

func init() {
	XTrack.Register(NewZeroRelation(), NewOneRelation(), NewTwoRelation(), NewRelationOne())
}
