package export

import (
	"bytes"
	"encoding/csv"

	apperrors "github.com/xiebiao/aptcare/pkg/errors"
)

// 文件类型
const (
	ContentTypeCSV = "text/csv; charset=utf-8"
	ContentTypePDF = "application/pdf"
)

// utf8BOM Excel打开UTF-8 CSV时需要BOM才能正确识别重音字符
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table 导出用的表格数据
type Table struct {
	Title    string
	Subtitle string
	Header   []string
	Rows     [][]string
}

// CSV 生成CSV文件内容
func CSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return nil, apperrors.Wrap(err, "生成CSV失败")
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, apperrors.Wrap(err, "生成CSV失败")
	}
	return buf.Bytes(), nil
}
