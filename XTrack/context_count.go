// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XTrack

import "github.com/pkg/errors"

// Count 返回指定实体数据表的记录数量，直接从数据库读取。
func (ctx *Context) Count(model IEntity) (int, error) {
	if err := ctx.check("Count"); err != nil {
		return 0, err
	}
	if getSchema(model) == nil {
		return 0, errors.Wrapf(ErrUnregistered, "XTrack.Count: context-%v: %T", ctx.id, model)
	}
	ormer, err := ctx.ormer("Count")
	if err != nil {
		return 0, err
	}
	count, err := ormer.QueryTable(model).Count()
	if err != nil {
		return 0, errors.Wrapf(err, "XTrack.Count: context-%v: %v", ctx.id, model.TableName())
	}
	return int(count), nil
}
