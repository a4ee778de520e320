package session

import (
	"errors"
	"sync"

	"github.com/linsy89/sp-data-analysis-tool/internal/extractor"
	"github.com/linsy89/sp-data-analysis-tool/internal/model"
	"github.com/linsy89/sp-data-analysis-tool/internal/store"
)

// ErrNotLoaded 当前没有已加载的表格
var ErrNotLoaded = errors.New("no table loaded")

// Session 分析会话状态
// 生命周期: 空 -> 已加载 -> 失效(新上传/清除) -> 已加载 ...
// 提取结果同时写入快照存储，进程重启后详情页仍可下钻
type Session struct {
	mu    sync.RWMutex
	store *store.Store

	fileID    string
	fileName  string
	raw       *model.Table
	extracted *model.Table
	summary   extractor.DimensionSummary
	loaded    bool
}

// New 创建会话
func New(st *store.Store) *Session {
	return &Session{store: st}
}

// SetUpload 用新上传的表格替换当前会话状态
// 旧的提取结果和快照随之失效
func (s *Session) SetUpload(fileID, fileName string, raw, extracted *model.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fileID = fileID
	s.fileName = fileName
	s.raw = raw
	s.extracted = extracted
	s.summary = extractor.Summarize(extracted)
	s.loaded = true

	if s.store != nil {
		return s.store.SaveSnapshot(fileID, fileName, extracted)
	}
	return nil
}

// Clear 清除会话状态和快照
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fileID = ""
	s.fileName = ""
	s.raw = nil
	s.extracted = nil
	s.summary = extractor.DimensionSummary{}
	s.loaded = false

	if s.store != nil {
		return s.store.ClearSnapshot()
	}
	return nil
}

// Loaded 当前是否有已加载的表格
func (s *Session) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// FileName 当前文件名
func (s *Session) FileName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fileName
}

// Raw 原始表格
func (s *Session) Raw() (*model.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.raw == nil {
		return nil, ErrNotLoaded
	}
	return s.raw, nil
}

// Extracted 提取后的表格
// 内存中没有时回退到快照存储（例如重启后打开的详情页链接）
func (s *Session) Extracted() (*model.Table, error) {
	s.mu.RLock()
	if s.extracted != nil {
		t := s.extracted
		s.mu.RUnlock()
		return t, nil
	}
	s.mu.RUnlock()

	if s.store == nil {
		return nil, ErrNotLoaded
	}

	snapshot, err := s.store.LoadSnapshot()
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, ErrNotLoaded
	}

	s.mu.Lock()
	s.fileID = snapshot.FileID
	s.fileName = snapshot.FileName
	s.extracted = snapshot.Table
	s.summary = extractor.Summarize(snapshot.Table)
	s.loaded = true
	s.mu.Unlock()

	return snapshot.Table, nil
}

// Summary 维度统计摘要
func (s *Session) Summary() (extractor.DimensionSummary, error) {
	if _, err := s.Extracted(); err != nil {
		return extractor.DimensionSummary{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary, nil
}
