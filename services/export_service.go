package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"salon-wellness-backend/insights"
	"salon-wellness-backend/models"
	"salon-wellness-backend/query"
	"salon-wellness-backend/store"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/xuri/excelize/v2"
)

const (
	SessionSheet = "セッション"
	xlsxType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var sessionHeaders = []string{
	"日付", "顧客名", "顧客番号", "メニュー", "来店回数", "担当",
	"HRV前", "HRV後", "HRV変化", "状態", "満足度", "主訴",
}

// BuildSessionWorkbook writes every session, newest first, to one sheet.
func BuildSessionWorkbook(clients []models.Client, sessions []models.Session) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SessionSheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	headers := make([]interface{}, len(sessionHeaders))
	for i, h := range sessionHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(SessionSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write headers: %w", err)
	}

	idx := query.ClientIndex(clients)
	for i, s := range query.SortByRecency(sessions) {
		v := insights.ViewSession(s, idx)
		row := []interface{}{
			s.Date,
			v.ClientName,
			idx[s.ClientID].CustomerNumber,
			s.Menu,
			s.VisitNumber,
			s.StaffName,
			optional(s.HRVBefore),
			optional(s.HRVAfter),
			optional(v.HRVDelta),
			string(v.Status),
			s.Post.Satisfaction,
			s.Pre.MainConcern,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SessionSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	for _, w := range []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 12},
		{"B", "D", 18},
		{"L", "L", 40},
	} {
		if err := f.SetColWidth(SessionSheet, w.from, w.to, w.width); err != nil {
			return nil, fmt.Errorf("column width %s:%s: %w", w.from, w.to, err)
		}
	}
	return f, nil
}

func optional(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

// ObjectPutter is the part of the S3 client the export uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client loads credentials from the default AWS chain.
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// ExportService uploads the session workbook to object storage.
type ExportService struct {
	store  *store.Store
	putter ObjectPutter
	bucket string
	prefix string
	now    func() time.Time
}

func NewExportService(st *store.Store, putter ObjectPutter, bucket, prefix string) *ExportService {
	return &ExportService{store: st, putter: putter, bucket: bucket, prefix: prefix, now: time.Now}
}

// UploadExport stores today's workbook and returns its object key.
func (s *ExportService) UploadExport(ctx context.Context) (string, error) {
	f, err := BuildSessionWorkbook(s.store.Clients(), s.store.Sessions())
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", fmt.Errorf("write workbook: %w", err)
	}

	key := s.prefix + ExportFileName(s.now())
	_, err = s.putter.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(xlsxType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	log.Printf("Session export uploaded to s3://%s/%s", s.bucket, key)
	return key, nil
}

func ExportFileName(now time.Time) string {
	return fmt.Sprintf("sessions_%s.xlsx", now.Format("20060102"))
}

// XLSXContentType is the media type of the exported workbook.
func XLSXContentType() string {
	return xlsxType
}
