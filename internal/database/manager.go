package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dataio/internal/core"
	"dataio/internal/pkg/logger"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/sijms/go-ora/v2"
)

// Config 数据库连接配置，由调用方显式构造传入
type Config struct {
	Driver   string `json:"driver"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
	Schema   string `json:"schema"`
	// ConnectTimeout 连接超时，零值时取默认10秒
	ConnectTimeout time.Duration `json:"-"`
	// QueryTimeout 查询超时，零值时取默认30秒
	QueryTimeout time.Duration `json:"-"`
}

// Manager 数据库连接管理器，独占管理一个连接的生命周期。
// 状态机: Disconnected -> Connect -> Connected -> Disconnect -> Disconnected，
// 未连接时执行SQL会返回 core.ErrNotConnected。
// 单个Manager实例不支持多协程并发使用，需要并发时每个协程持有自己的实例。
type Manager struct {
	cfg    *Config
	db     *sql.DB
	logger *logger.Logger
}

// NewManager 创建新的连接管理器实例
func NewManager(cfg *Config) *Manager {
	// 设置默认超时
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	if cfg.QueryTimeout == 0 {
		cfg.QueryTimeout = 30 * time.Second
	}

	return &Manager{
		cfg: cfg,
		logger: logger.New(&logger.Option{
			Level:    logger.LevelInfo,
			Prefix:   "ConnManager",
			WithTime: true,
		}),
	}
}

// Connect 打开数据库连接并验证连通性。
// 连接失败时返回错误，调用方不能继续使用该Manager执行SQL。
func (m *Manager) Connect() error {
	if m.db != nil {
		return nil
	}

	name, err := driverName(m.cfg.Driver)
	if err != nil {
		return fmt.Errorf("连接数据库 %s 失败: %v", m.cfg.Database, err)
	}

	dsn, err := buildDSN(m.cfg)
	if err != nil {
		return fmt.Errorf("连接数据库 %s 失败: %v", m.cfg.Database, err)
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return fmt.Errorf("连接数据库 %s 失败: %v", m.cfg.Database, err)
	}

	// 连接池配置
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(20)
	db.SetConnMaxLifetime(time.Hour)

	// 在超时内验证连接
	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping数据库 %s 失败: %v", m.cfg.Database, err)
	}

	m.db = db
	m.logger.Info("成功连接到数据库: %s@%s:%d/%s", m.cfg.Username, m.cfg.Host, m.cfg.Port, m.cfg.Database)
	return nil
}

// Connected 判断当前是否处于已连接状态
func (m *Manager) Connected() bool {
	return m.db != nil
}

// Disconnect 释放数据库连接，已断开时为空操作
func (m *Manager) Disconnect() error {
	if m.db == nil {
		return nil
	}

	err := m.db.Close()
	m.db = nil
	if err != nil {
		return fmt.Errorf("断开数据库 %s 失败: %v", m.cfg.Database, err)
	}

	m.logger.Info("已断开数据库连接: %s:%d/%s", m.cfg.Host, m.cfg.Port, m.cfg.Database)
	return nil
}

// ExecuteQuery 在事务内执行一条SQL语句并提交，用于DDL和DML
func (m *Manager) ExecuteQuery(query string) (sql.Result, error) {
	if m.db == nil {
		return nil, fmt.Errorf("%w: 无法执行语句", core.ErrNotConnected)
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.QueryTimeout)
	defer cancel()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("开始事务失败: %v", err)
	}

	result, err := tx.ExecContext(ctx, query)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("执行语句失败: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("提交事务失败: %v", err)
	}

	return result, nil
}

// QueryResult 一次查询的物化结果：列名、驱动报告的列类型名和全部行
type QueryResult struct {
	Columns []string
	Types   []string
	Rows    [][]any
}

// Query 执行查询语句，在超时内物化全部结果行
func (m *Manager) Query(query string) (*QueryResult, error) {
	if m.db == nil {
		return nil, fmt.Errorf("%w: 无法执行查询", core.ErrNotConnected)
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.QueryTimeout)
	defer cancel()

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("执行查询失败: %v", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("获取列信息失败: %v", err)
	}

	types := make([]string, len(columns))
	if columnTypes, err := rows.ColumnTypes(); err == nil {
		for i, ct := range columnTypes {
			types[i] = ct.DatabaseTypeName()
		}
	}

	result := &QueryResult{Columns: columns, Types: types}
	values := make([]any, len(columns))
	valuePtrs := make([]any, len(columns))
	for i := range columns {
		valuePtrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("扫描数据失败: %v", err)
		}
		row := make([]any, len(columns))
		copy(row, values)
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("读取数据过程中发生错误: %v", err)
	}

	return result, nil
}

// ExecuteBatch 在一个事务内用预编译语句批量执行，失败时整体回滚
func (m *Manager) ExecuteBatch(query string, argsList [][]any) error {
	if m.db == nil {
		return fmt.Errorf("%w: 无法执行批量写入", core.ErrNotConnected)
	}

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("开始事务失败: %v", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("准备语句失败: %v", err)
	}
	defer stmt.Close()

	for _, args := range argsList {
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("执行写入失败: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("提交事务失败: %v", err)
	}

	return nil
}
