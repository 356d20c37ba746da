package sink

import (
	"context"
	"encoding/binary"
	"encoding/json"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/hatlonely/datafaker/schema"
)

// BoltSinkOptions BoltSink 构造选项
type BoltSinkOptions struct {
	// DBPath 数据库文件路径，文件不存在时自动创建
	DBPath string `cfg:"dbPath" validate:"required"`

	// BucketName 桶名称，默认 records
	BucketName string `cfg:"bucketName"`
}

// BoltSink 把每一行以 JSON 编码写入 boltdb 桶里
// 键是桶内自增序号的大端编码，保证按写入顺序遍历
type BoltSink struct {
	db     *bolt.DB
	bucket []byte
}

// NewBoltSinkWithOptions 创建 boltdb 输出端
func NewBoltSinkWithOptions(options *BoltSinkOptions) (*BoltSink, error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}
	if err := validate.Struct(options); err != nil {
		return nil, errors.WithMessage(err, "invalid bolt sink options")
	}

	bucketName := options.BucketName
	if bucketName == "" {
		bucketName = "records"
	}

	db, err := bolt.Open(options.DBPath, 0600, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "bolt.Open %s failed", options.DBPath)
	}

	return &BoltSink{
		db:     db,
		bucket: []byte(bucketName),
	}, nil
}

// Write 写出一张表，一行一个键值对
func (s *BoltSink) Write(ctx context.Context, table *schema.Table) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(s.bucket)
		if err != nil {
			return errors.Wrap(err, "create bucket failed")
		}

		for _, record := range table.Records() {
			seq, err := bucket.NextSequence()
			if err != nil {
				return errors.Wrap(err, "next sequence failed")
			}
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, seq)

			val, err := json.Marshal(record)
			if err != nil {
				return errors.Wrap(err, "marshal record failed")
			}
			if err := bucket.Put(key, val); err != nil {
				return errors.Wrap(err, "put record failed")
			}
		}
		return nil
	})
}

// Close 关闭数据库
func (s *BoltSink) Close() error {
	return errors.Wrap(s.db.Close(), "close db failed")
}
