package task

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"casemall_v1_202608/pkg/logger"
)

// ==================== CleanupTask 孤儿文件清理任务 ====================

// CleanupTask 定时扫描本地上传目录，删除没有任何实体行引用的文件。
// 级联删除后文件清理失败时，行已经没了，靠这个任务兜底回收磁盘。
// 仅 local 存储模式启用。
type CleanupTask struct {
	db       *gorm.DB
	basePath string
	spec     string
	minAge   time.Duration
	cron     *cron.Cron
	log      *zap.Logger
}

// NewCleanupTask 创建清理任务
func NewCleanupTask(db *gorm.DB, basePath, spec string, minAge time.Duration) *CleanupTask {
	return &CleanupTask{
		db:       db,
		basePath: basePath,
		spec:     spec,
		minAge:   minAge,
		cron:     cron.New(cron.WithSeconds()),
		log:      logger.L.Named("cleanup"),
	}
}

// Start 启动定时任务
func (t *CleanupTask) Start() error {
	_, err := t.cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.execute(ctx)
	})
	if err != nil {
		return err
	}

	t.cron.Start()
	t.log.Info("孤儿文件清理任务已启动", zap.String("spec", t.spec))
	return nil
}

// Stop 停止任务，等待进行中的扫描结束
func (t *CleanupTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.log.Info("孤儿文件清理任务已停止")
}

// execute 执行一次扫描
func (t *CleanupTask) execute(ctx context.Context) {
	referenced, err := t.referencedPaths(ctx)
	if err != nil {
		t.log.Error("查询引用路径失败", zap.Error(err))
		return
	}

	var scanned, removed int
	cutoff := time.Now().Add(-t.minAge)

	err = filepath.WalkDir(t.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		scanned++

		// 刚上传、行还没落库的文件不碰
		info, err := d.Info()
		if err != nil || info.ModTime().After(cutoff) {
			return nil
		}

		if referenced[filepath.ToSlash(path)] {
			return nil
		}

		if err := os.Remove(path); err != nil {
			t.log.Warn("删除孤儿文件失败", zap.String("path", path), zap.Error(err))
			return nil
		}
		removed++
		t.log.Info("已删除孤儿文件", zap.String("path", path))
		return nil
	})
	if err != nil {
		t.log.Error("扫描上传目录失败", zap.Error(err))
		return
	}

	if removed > 0 {
		t.log.Info("清理完成", zap.Int("scanned", scanned), zap.Int("removed", removed))
	}
}

// referencedPaths 汇总所有实体行中的图片路径
func (t *CleanupTask) referencedPaths(ctx context.Context) (map[string]bool, error) {
	queries := []struct {
		table  string
		column string
	}{
		{"main_categories", "image"},
		{"sub_categories", "image"},
		{"product_images", "image"},
		{"case_variants", "image"},
	}

	referenced := make(map[string]bool)
	for _, q := range queries {
		var paths []string
		if err := t.db.WithContext(ctx).Table(q.table).Pluck(q.column, &paths).Error; err != nil {
			return nil, err
		}
		for _, p := range paths {
			if p != "" {
				referenced[p] = true
			}
		}
	}
	return referenced, nil
}
