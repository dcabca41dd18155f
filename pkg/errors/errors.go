package errors

import "errors"

// ErrWriteConflict 写冲突：记录已被其他操作修改（仓储层 last-write-wins 后仍失败时上抛）
var ErrWriteConflict = errors.New("数据已被其他操作修改，请刷新后重试")
