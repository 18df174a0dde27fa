package relational

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"dataio/internal/core"
	"dataio/internal/database"
	"dataio/internal/pkg/logger"
)

// Parameter 关系型存储参数结构体
type Parameter struct {
	Driver   string `json:"driver"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
	Schema   string `json:"schema"`
	LogLevel int    `json:"logLevel"`
}

// connection 关系型存储依赖的连接能力，由 database.Manager 提供
type connection interface {
	Connect() error
	Disconnect() error
	ExecuteQuery(query string) (sql.Result, error)
	ExecuteBatch(query string, argsList [][]any) error
	Query(query string) (*database.QueryResult, error)
}

// RelationalStore 关系型数据库存储处理器。
// 把表格数据和单张数据库表互相搬运：写入时推断表结构、幂等建表后追加，
// 读取时把整张表物化为表格数据。每次读写都完整管理一次连接的生命周期，
// 无论成功失败都保证释放连接。
// 单个实例独占一个连接管理器，不支持多协程并发使用。
type RelationalStore struct {
	Parameter *Parameter
	conn      connection
	logger    *logger.Logger
}

// identifierPattern 合法标识符：字母或下划线开头，只含字母数字下划线
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// NewRelationalStore 创建新的关系型存储处理器实例
func NewRelationalStore(parameter *Parameter) *RelationalStore {
	// 设置默认值
	if parameter.Driver == "" {
		parameter.Driver = database.DriverPostgreSQL
	}
	if parameter.LogLevel == 0 {
		parameter.LogLevel = int(logger.LevelInfo)
	}

	manager := database.NewManager(&database.Config{
		Driver:   parameter.Driver,
		Host:     parameter.Host,
		Port:     parameter.Port,
		Database: parameter.Database,
		Username: parameter.Username,
		Password: parameter.Password,
		Schema:   parameter.Schema,
	})

	return &RelationalStore{
		Parameter: parameter,
		conn:      manager,
		logger: logger.New(&logger.Option{
			Level:    logger.Level(parameter.LogLevel),
			Prefix:   "RelationalStore",
			WithTime: true,
		}),
	}
}

var _ core.Store = (*RelationalStore)(nil)

// Read 实现core.Store接口，target.Table 指定来源表
func (s *RelationalStore) Read(target *core.Target) (*core.Table, error) {
	return s.ReadTable(target.Table)
}

// Write 实现core.Store接口，target.Table 指定目标表
func (s *RelationalStore) Write(data *core.Table, target *core.Target) error {
	return s.WriteTable(data, target.Table)
}

// WriteTable 把表格数据追加写入指定表。
// 表不存在时按列类型映射幂等创建，已存在时不做任何修改，
// 结构不兼容会在追加阶段失败并回滚本批数据。
func (s *RelationalStore) WriteTable(data *core.Table, tableName string) error {
	if err := validateIdentifier(tableName); err != nil {
		return fmt.Errorf("%w: 表 %s: %v", core.ErrSchemaError, tableName, err)
	}
	if err := s.validateSchema(); err != nil {
		return fmt.Errorf("%w: 表 %s: %v", core.ErrSchemaError, tableName, err)
	}
	for _, col := range data.Columns {
		if err := validateIdentifier(col.Name); err != nil {
			return fmt.Errorf("%w: 表 %s: %v", core.ErrSchemaError, tableName, err)
		}
	}

	if err := s.conn.Connect(); err != nil {
		return fmt.Errorf("%w: 表 %s: %v", core.ErrWriteFailure, tableName, err)
	}
	// 无论成功失败都释放连接
	defer s.conn.Disconnect()

	if err := s.ensureTable(data, tableName); err != nil {
		return err
	}

	if err := s.appendRows(data, tableName); err != nil {
		return err
	}

	s.logger.Info("已写入表 %s: %d 行", tableName, data.RowCount())
	return nil
}

// ensureTable 幂等创建目标表，不会修改已存在的表
func (s *RelationalStore) ensureTable(data *core.Table, tableName string) error {
	columnDefs := make([]string, len(data.Columns))
	for i, col := range data.Columns {
		columnDefs[i] = fmt.Sprintf("%s %s", col.Name, SQLType(s.Parameter.Driver, col.Type))
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		s.qualifiedName(tableName),
		strings.Join(columnDefs, ", "),
	)

	if _, err := s.conn.ExecuteQuery(ddl); err != nil {
		return fmt.Errorf("%w: 表 %s: %v", core.ErrSchemaError, tableName, err)
	}

	s.logger.Debug("表 %s 已就绪", tableName)
	return nil
}

// appendRows 把全部行追加到目标表，始终INSERT，不做去重
func (s *RelationalStore) appendRows(data *core.Table, tableName string) error {
	if data.RowCount() == 0 {
		return nil
	}

	placeholders := make([]string, len(data.Columns))
	for i := range data.Columns {
		placeholders[i] = placeholder(s.Parameter.Driver, i+1)
	}

	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.qualifiedName(tableName),
		strings.Join(data.ColumnNames(), ", "),
		strings.Join(placeholders, ", "),
	)

	rows := make([][]any, data.RowCount())
	for i := range rows {
		rows[i] = data.Row(i)
	}

	if err := s.conn.ExecuteBatch(insertSQL, rows); err != nil {
		return fmt.Errorf("%w: 表 %s: %v", core.ErrWriteFailure, tableName, err)
	}

	return nil
}

// ReadTable 把整张表物化为表格数据，列顺序与表定义一致
func (s *RelationalStore) ReadTable(tableName string) (*core.Table, error) {
	if err := validateIdentifier(tableName); err != nil {
		return nil, fmt.Errorf("%w: 表 %s: %v", core.ErrReadFailure, tableName, err)
	}
	if err := s.validateSchema(); err != nil {
		return nil, fmt.Errorf("%w: 表 %s: %v", core.ErrReadFailure, tableName, err)
	}

	if err := s.conn.Connect(); err != nil {
		return nil, fmt.Errorf("%w: 表 %s: %v", core.ErrReadFailure, tableName, err)
	}
	defer s.conn.Disconnect()

	result, err := s.conn.Query(fmt.Sprintf("SELECT * FROM %s", s.qualifiedName(tableName)))
	if err != nil {
		return nil, fmt.Errorf("%w: 表 %s: %v", core.ErrReadFailure, tableName, err)
	}

	data := core.NewTable()
	for i, name := range result.Columns {
		typ := columnTypeOf(result.Types[i])
		values := make([]any, len(result.Rows))
		for j, row := range result.Rows {
			values[j] = normalizeValue(row[i], typ)
		}
		if err := data.AddColumn(name, typ, values); err != nil {
			return nil, fmt.Errorf("%w: 表 %s: %v", core.ErrReadFailure, tableName, err)
		}
	}

	s.logger.Info("已读取表 %s: %d 列, %d 行", tableName, len(data.Columns), data.RowCount())
	return data, nil
}

// validateSchema 校验schema名，schema与表名同样拼入SQL文本
func (s *RelationalStore) validateSchema() error {
	if s.Parameter.Schema == "" {
		return nil
	}
	return validateIdentifier(s.Parameter.Schema)
}

// qualifiedName 拼接schema限定的表名
func (s *RelationalStore) qualifiedName(tableName string) string {
	if s.Parameter.Schema != "" {
		return s.Parameter.Schema + "." + tableName
	}
	return tableName
}

// validateIdentifier 校验表名和列名，拒绝无法安全拼入SQL文本的标识符
func validateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("标识符不能为空")
	}
	if len(name) > 64 {
		return fmt.Errorf("标识符过长: %s", name)
	}
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("非法标识符: %s", name)
	}
	return nil
}

// normalizeValue 把驱动扫描出的值规整为列类型对应的Go类型，
// 保证列值与声明的标量类型一致
func normalizeValue(v any, typ core.ColumnType) any {
	if v == nil {
		return nil
	}

	switch typ {
	case core.TypeInt64, core.TypeInt32:
		switch val := v.(type) {
		case int64:
			return core.Coerce(val, typ)
		case int32:
			return core.Coerce(val, typ)
		case []byte:
			if parsed, inferred := core.InferString(string(val)); inferred == core.TypeInt64 {
				return core.Coerce(parsed, typ)
			}
			return string(val)
		}
	case core.TypeFloat64, core.TypeFloat32:
		switch val := v.(type) {
		case float64:
			return core.Coerce(val, typ)
		case float32:
			return core.Coerce(val, typ)
		case int64:
			return core.Coerce(float64(val), typ)
		case []byte:
			if parsed, inferred := core.InferString(string(val)); inferred == core.TypeInt64 || inferred == core.TypeFloat64 {
				return core.Coerce(parsed, typ)
			}
			return string(val)
		}
	case core.TypeTimestamp:
		switch val := v.(type) {
		case time.Time:
			return val
		case []byte:
			if ts, ok := core.ParseTimestamp(string(val)); ok {
				return ts
			}
			return string(val)
		}
	}

	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
