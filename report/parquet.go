package report

import (
	"time"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"fit-intervals/detect"
)

type readingRow struct {
	TraceDate    string `parquet:"name=trace_date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	IntervalName string `parquet:"name=interval_name, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	SampleIndex  int64  `parquet:"name=sample_index, type=INT64"`
	OffsetS      int64  `parquet:"name=offset_s, type=INT64"`
	PowerW       int64  `parquet:"name=power_w, type=INT64"`
	TSUTCISO     string `parquet:"name=ts_utc_iso, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
}

// MarshalParquet serialises every reported reading of a batch as one
// parquet row, SNAPPY-compressed.
func MarshalParquet(files []detect.FileData) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(readingRow), 4)
	if err != nil {
		return nil, err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, fd := range files {
		date := fd.StartTime.Format(dateLayout)
		for _, iv := range fd.Intervals {
			for i, r := range iv.Readings {
				row := readingRow{
					TraceDate:    date,
					IntervalName: iv.Name,
					SampleIndex:  int64(i + 1),
					OffsetS:      int64(r.Time.Sub(fd.StartTime) / time.Second),
					PowerW:       int64(r.Power),
					TSUTCISO:     r.Time.UTC().Format(time.RFC3339),
				}
				if err := pw.Write(row); err != nil {
					_ = pw.WriteStop()
					return nil, err
				}
			}
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}
