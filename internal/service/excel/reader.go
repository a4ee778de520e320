package excel

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/linsy89/sp-data-analysis-tool/internal/model"
)

// Reader Excel 读取器
// 读取第一个工作表，第一行为表头，其余行为数据
type Reader struct {
	file   *excelize.File
	fileID string
}

// NewReader 创建读取器
func NewReader() *Reader {
	return &Reader{
		fileID: uuid.New().String(),
	}
}

// Load 加载 Excel 文件
func (r *Reader) Load(reader io.Reader) error {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return fmt.Errorf("failed to open excel: %w", err)
	}
	r.file = file
	return nil
}

// FileID 获取文件ID
func (r *Reader) FileID() string {
	return r.fileID
}

// Close 关闭底层工作簿
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// Table 读取为内存表格
// maxRows 限制数据行数，0 表示不限制；全空行跳过
func (r *Reader) Table(maxRows int) (*model.Table, error) {
	if r.file == nil {
		return nil, errors.New("no file loaded")
	}

	sheets := r.file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("no sheet found")
	}

	rows, err := r.file.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty sheet")
	}

	table := model.NewTable(rows[0])

	for _, row := range rows[1:] {
		if maxRows > 0 && table.RowCount() >= maxRows {
			break
		}

		cells := make([]model.Cell, len(table.Columns))
		empty := true
		for i := range cells {
			if i < len(row) {
				cells[i] = model.NewCell(row[i])
				if !cells[i].IsEmpty() {
					empty = false
				}
			}
		}
		if empty {
			continue
		}
		table.AppendRow(cells)
	}

	return table, nil
}
