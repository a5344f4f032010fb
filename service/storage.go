package service

import (
	"NoteShare/config"
	osspkg "NoteShare/pkg/oss"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
)

// ErrListUnsupported 存储后端不支持列举
var ErrListUnsupported = errors.New("storage backend does not support listing")

// Blob 打开的文件内容，调用方负责关闭 Body
type Blob struct {
	Body io.ReadCloser
	Size int64
}

// BlobInfo 列举结果
type BlobInfo struct {
	Key     string
	ModTime time.Time
}

var _ IStorage = (*LocalStorage)(nil)
var _ IStorage = (*OssStorage)(nil)

type IStorage interface {
	// Save 写入文件，返回写入字节数
	Save(ctx context.Context, key string, r io.Reader) (int64, error)

	// Open 打开文件
	Open(ctx context.Context, key string) (*Blob, error)

	// Delete 删除文件，文件不存在不算错误
	Delete(ctx context.Context, key string) error
}

// Lister 可列举全部文件的存储
type Lister interface {
	List(ctx context.Context) ([]BlobInfo, error)
}

// NewStorage 按配置选择存储后端
func NewStorage(cfg *config.Storage, ossCfg *config.OssConfig) (IStorage, error) {
	switch cfg.Backend {
	case config.StorageLocal:
		return NewLocalStorage(cfg.UploadDir)
	case config.StorageOss:
		return NewOssStorage(ossCfg), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

// LocalStorage 本地目录存储
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

// Save 先写临时文件，fsync 后原子改名
func (s *LocalStorage) Save(_ context.Context, key string, r io.Reader) (int64, error) {
	fullPath, err := s.path(key)
	if err != nil {
		return 0, err
	}
	tmpPath := fullPath + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	size, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return 0, fmt.Errorf("write file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return 0, fmt.Errorf("fsync: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("close file: %w", err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("rename file: %w", err)
	}
	return size, nil
}

func (s *LocalStorage) Open(_ context.Context, key string) (*Blob, error) {
	fullPath, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", key, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file %s: %w", key, err)
	}
	return &Blob{Body: f, Size: info.Size()}, nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	fullPath, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file %s: %w", key, err)
	}
	return nil
}

// List 列举目录下的文件，跳过临时文件
func (s *LocalStorage) List(_ context.Context) ([]BlobInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	// 中断的 Save 留下的 .tmp 也列出，由清理按 grace 删除
	items := make([]BlobInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		items = append(items, BlobInfo{Key: e.Name(), ModTime: info.ModTime()})
	}
	return items, nil
}

// OssStorage 阿里云 OSS 存储
type OssStorage struct {
	Client     *oss.Client
	BucketName string
	Prefix     string
}

func NewOssStorage(cfg *config.OssConfig) *OssStorage {
	return &OssStorage{
		Client:     osspkg.NewClient(cfg),
		BucketName: cfg.Bucket,
		Prefix:     cfg.Prefix,
	}
}

func (s *OssStorage) objectKey(key string) string {
	return s.Prefix + key
}

// Save 上传 Reader
func (s *OssStorage) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	counter := &countingReader{r: r}
	_, err := s.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(s.objectKey(key)),
		Body:   counter,
	})
	if err != nil {
		return 0, err
	}
	return counter.n, nil
}

func (s *OssStorage) Open(ctx context.Context, key string) (*Blob, error) {
	out, err := s.Client.GetObject(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(s.objectKey(key)),
	})
	if err != nil {
		return nil, err
	}
	return &Blob{Body: out.Body, Size: out.ContentLength}, nil
}

// Delete 删除对象，OSS 对不存在的对象同样返回成功
func (s *OssStorage) Delete(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(s.objectKey(key)),
	})
	return err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
