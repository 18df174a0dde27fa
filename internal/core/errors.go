package core

import "errors"

// 统一的错误分类。所有存储操作的失败都包装下列哨兵错误之一，
// 携带操作目标（文件路径或表名）和底层原因，调用方用 errors.Is 判断类别。
var (
	// ErrUnsupportedFormat 文件扩展名没有注册对应的编解码器
	ErrUnsupportedFormat = errors.New("不支持的文件格式")
	// ErrIOFailure 文件系统或序列化失败
	ErrIOFailure = errors.New("文件读写失败")
	// ErrSchemaError 建表等DDL失败
	ErrSchemaError = errors.New("表结构操作失败")
	// ErrWriteFailure 数据写入(DML)失败
	ErrWriteFailure = errors.New("数据写入失败")
	// ErrReadFailure 数据查询失败
	ErrReadFailure = errors.New("数据读取失败")
	// ErrNotConnected 未建立连接时执行了数据库操作
	ErrNotConnected = errors.New("数据库未连接")
)
