package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/hatlonely/datafaker/schema"
)

// SQLSinkOptions SQLSink 构造选项
type SQLSinkOptions struct {
	// Driver 数据库驱动，mysql 或者 sqlite3，默认 mysql
	Driver string `cfg:"driver" validate:"omitempty,oneof=mysql sqlite3"`

	// DSN 连接串，为空时由下面的字段拼出
	DSN string `cfg:"dsn"`

	Host     string `cfg:"host"`
	Port     string `cfg:"port"`
	Database string `cfg:"database"`
	Username string `cfg:"username"`
	Password string `cfg:"password"`
	Charset  string `cfg:"charset"`

	// Table 目标表名
	Table string `cfg:"table" validate:"required"`

	// CreateTable 写入前自动建表，列类型根据第一行非空值推断
	CreateTable bool `cfg:"createTable"`

	// BatchSize 每条 INSERT 语句携带的行数，默认 100
	BatchSize int `cfg:"batchSize" validate:"gte=0"`
}

// SQLSink 把生成结果表写入关系型数据库
type SQLSink struct {
	db          *sql.DB
	driver      string
	table       string
	createTable bool
	batchSize   int
}

// NewSQLSinkWithOptions 创建数据库输出端
func NewSQLSinkWithOptions(options *SQLSinkOptions) (*SQLSink, error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}
	if err := validate.Struct(options); err != nil {
		return nil, errors.WithMessage(err, "invalid sql sink options")
	}

	driver := options.Driver
	if driver == "" {
		driver = "mysql"
	}

	dsn := options.DSN
	if dsn == "" {
		switch driver {
		case "mysql":
			host, port, charset := options.Host, options.Port, options.Charset
			if host == "" {
				host = "localhost"
			}
			if port == "" {
				port = "3306"
			}
			if charset == "" {
				charset = "utf8mb4"
			}
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
				options.Username, options.Password, host, port, options.Database, charset)
		case "sqlite3":
			if options.Database == "" {
				return nil, errors.New("database is required for sqlite3")
			}
			dsn = options.Database
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "db.Ping failed")
	}

	batchSize := options.BatchSize
	if batchSize == 0 {
		batchSize = 100
	}

	return &SQLSink{
		db:          db,
		driver:      driver,
		table:       options.Table,
		createTable: options.CreateTable,
		batchSize:   batchSize,
	}, nil
}

// Write 写出一张表，可选地先建表，然后按批次插入
func (s *SQLSink) Write(ctx context.Context, table *schema.Table) error {
	if s.createTable {
		if err := s.ensureTable(ctx, table); err != nil {
			return err
		}
	}

	names := table.ColumnNames()
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = s.quoteIdent(name)
	}

	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?,", len(names)), ",") + ")"
	rows := table.Rows()

	for begin := 0; begin < len(rows); begin += s.batchSize {
		end := min(begin+s.batchSize, len(rows))
		batch := rows[begin:end]

		placeholders := make([]string, len(batch))
		args := make([]any, 0, len(batch)*len(names))
		for i, row := range batch {
			placeholders[i] = placeholder
			args = append(args, row...)
		}

		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
			s.quoteIdent(s.table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "insert into %s failed", s.table)
		}
	}

	return nil
}

// ensureTable 建表，列类型根据每列第一个非空值推断，全空的列用 TEXT
func (s *SQLSink) ensureTable(ctx context.Context, table *schema.Table) error {
	names := table.ColumnNames()
	defs := make([]string, len(names))
	for i, name := range names {
		defs[i] = s.quoteIdent(name) + " " + s.columnType(table, i)
	}

	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		s.quoteIdent(s.table), strings.Join(defs, ", "))
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return errors.Wrapf(err, "create table %s failed", s.table)
	}
	return nil
}

func (s *SQLSink) columnType(table *schema.Table, index int) string {
	for _, row := range table.Rows() {
		switch row[index].(type) {
		case nil:
			continue
		case int, int64:
			return "BIGINT"
		case float64:
			return "DOUBLE"
		case bool:
			return "BOOLEAN"
		default:
			return "TEXT"
		}
	}
	return "TEXT"
}

func (s *SQLSink) quoteIdent(name string) string {
	if s.driver == "mysql" {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Close 关闭数据库连接
func (s *SQLSink) Close() error {
	return errors.Wrap(s.db.Close(), "close db failed")
}
