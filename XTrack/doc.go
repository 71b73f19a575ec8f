// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
XTrack 基于 Beego 的 ORM 实现了可追踪的持久化存储，提供了新建追踪、变更检测和批量保存等操作。

功能特性

  - 多源配置：通过解析首选项中的配置自动初始化数据库连接
  - 变更追踪：记录实体的新建和修改状态，支持自动检测和手动检测
  - 批量保存：在单个事务中按顺序写入新建和修改的实体

使用手册

1. 多源配置

配置说明：
  - 配置键名：Orm/Source/<数据库类型>/<数据库别名>
  - 支持 MySQL、SQLite3 等（Beego ORM 支持的类型）
  - 配置参数：
  - Addr：数据源地址
  - Pool：连接池大小
  - Conn：最大连接数
  - Track/Trace：为 1 时输出上下文的生命周期日志

配置示例：

	{
	    "Orm/Source/MySQL/default": {
	        "Addr": "root:123456@tcp(127.0.0.1:3306)/bench?charset=utf8mb4&loc=Local",
	        "Pool": 1,
	        "Conn": 1
	    },
	    "Orm/Source/SQLite3/local": {
	        "Addr": "file:bench.db?cache=shared&mode=rwc",
	        "Pool": 1,
	        "Conn": 1
	    }
	}

2. 实体定义

	type Order struct {
	    ID    int          `orm:"column(id);pk;auto"`
	    Price int          `orm:"column(price)"`
	    Items []*OrderItem `orm:"-" track:"items"` // 导航列表
	}

	func (o *Order) AliasName() string { return XTrack.DefaultAlias }
	func (o *Order) TableName() string { return "order" }

	type OrderItem struct {
	    ID      int    `orm:"column(id);pk;auto"`
	    OwnerID int    `orm:"column(owner_id)"`
	    Owner   string `orm:"column(owner);size(64)"`
	}

	func (i *OrderItem) AliasName() string { return XTrack.DefaultAlias }
	func (i *OrderItem) TableName() string { return "order_item" }
	func (i *OrderItem) Own(owner string, id int) { i.Owner, i.OwnerID = owner, id }

	func init() {
	    XTrack.Register(new(Order), new(OrderItem))
	}

3. 变更追踪

上下文的状态依次为：空 → 已填充 → 已修改 → [已保存] → 已关闭，关闭后不可复用。

	ctx := XTrack.Open()
	defer ctx.Close()

	// 关闭自动检测，批量追踪后手动检测一次。
	ctx.AutoDetectChanges(false)
	for _, order := range orders {
	    ctx.Add(order)
	}
	ctx.AutoDetectChanges(true)
	ctx.DetectChanges()

	// 在单个事务中写入。
	if _, err := ctx.SaveChanges(); err != nil {
	    return err
	}

注意：
1. 上下文绑定打开它的 goroutine，不支持并发访问
2. 开启自动检测时，每次 Add 以及 AddRange 中的每个实体的耗时都与已追踪的实体数量成正比
3. 保存失败时不会重试，追踪状态保持不变

更多信息请参考模块文档。
*/
package XTrack
