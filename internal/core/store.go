package core

// Target 标识一次读写的目标位置。
// 文件存储使用 Path（读取）或 BaseName/OutputDir/Extension（写入），
// 关系型存储使用 Table。
type Target struct {
	Path      string `json:"path"`
	BaseName  string `json:"baseName"`
	OutputDir string `json:"outputDir"`
	Extension string `json:"extension"`
	Table     string `json:"table"`
}

// Store 存储处理器接口，每种存储介质实现一套读写能力
type Store interface {
	// Read 从目标位置读取表格数据
	Read(target *Target) (*Table, error)
	// Write 将表格数据写入目标位置
	Write(data *Table, target *Target) error
}

// StoreFactory 定义了创建Store的工厂函数类型
type StoreFactory func(parameter any) (Store, error)
