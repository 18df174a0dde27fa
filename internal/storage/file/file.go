package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dataio/internal/core"
	"dataio/internal/pkg/logger"
)

// readerFunc 把一个文件解析为表格数据
type readerFunc func(path string) (*core.Table, error)

// writerFunc 把表格数据序列化到一个文件
type writerFunc func(data *core.Table, path string) error

// 格式注册表：扩展名到编解码函数的映射，新增格式只需注册新条目
var (
	formatReaders = map[string]readerFunc{
		"json":    readJSON,
		"csv":     readCSV,
		"parquet": readParquet,
	}
	formatWriters = map[string]writerFunc{
		"json":    writeJSON,
		"csv":     writeCSV,
		"parquet": writeParquet,
	}
)

// Parameter 文件存储参数结构体
type Parameter struct {
	LogLevel int `json:"logLevel"`
}

// FileStore 本地文件存储处理器，按扩展名读写json/csv/parquet格式
type FileStore struct {
	Parameter *Parameter
	logger    *logger.Logger
	// now 生成文件名用的时钟，测试时可替换
	now func() time.Time
}

// NewFileStore 创建新的文件存储处理器实例
func NewFileStore(parameter *Parameter) *FileStore {
	if parameter == nil {
		parameter = &Parameter{}
	}
	// 设置默认值
	if parameter.LogLevel == 0 {
		parameter.LogLevel = int(logger.LevelInfo)
	}

	return &FileStore{
		Parameter: parameter,
		logger: logger.New(&logger.Option{
			Level:    logger.Level(parameter.LogLevel),
			Prefix:   "FileStore",
			WithTime: true,
		}),
		now: time.Now,
	}
}

var _ core.Store = (*FileStore)(nil)

// Read 实现core.Store接口，target.Path 指定来源文件
func (s *FileStore) Read(target *core.Target) (*core.Table, error) {
	return s.ReadFile(target.Path, target.Extension)
}

// Write 实现core.Store接口，按target的目录、基础名和扩展名写出
func (s *FileStore) Write(data *core.Table, target *core.Target) error {
	_, err := s.WriteFile(data, target.BaseName, target.OutputDir, target.Extension)
	return err
}

// ReadFile 读取本地文件为表格数据。
// extension 非空时优先生效，否则取路径的后缀名。
func (s *FileStore) ReadFile(path string, extension string) (*core.Table, error) {
	ext := extension
	if ext == "" {
		ext = strings.TrimPrefix(filepath.Ext(path), ".")
	}

	reader, ok := formatReaders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, ext)
	}

	data, err := reader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: 读取文件 %s 失败: %v", core.ErrIOFailure, path, err)
	}

	s.logger.Debug("已读取文件 %s: %d 列, %d 行", path, len(data.Columns), data.RowCount())
	return data, nil
}

// WriteFile 把表格数据写到带时间戳的新文件，返回写入的路径。
// 不支持的扩展名在创建任何文件之前失败；
// 序列化中途失败时可能留下不完整的文件，由调用方清理。
func (s *FileStore) WriteFile(data *core.Table, baseName, outputDir, extension string) (string, error) {
	writer, ok := formatWriters[extension]
	if !ok {
		return "", fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, extension)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("%w: 创建目录 %s 失败: %v", core.ErrIOFailure, outputDir, err)
	}

	path := s.generateFileName(baseName, extension, outputDir)

	if err := writer(data, path); err != nil {
		return "", fmt.Errorf("%w: 写入文件 %s 失败: %v", core.ErrIOFailure, path, err)
	}

	s.logger.Info("数据已写入 %s", path)
	return path, nil
}

// generateFileName 生成带时间戳的文件路径，避免覆盖之前的输出
func (s *FileStore) generateFileName(baseName, extension, outputDir string) string {
	dateStr := s.now().Format("02-01-2006_15-04-05")
	return filepath.Join(outputDir, fmt.Sprintf("%s_%s.%s", baseName, dateStr, extension))
}
