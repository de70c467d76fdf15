package formatter

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/theoremus-urban-solutions/gtfs-csv/gtfs"
)

var records = [][]string{
	{"stop_id", "stop_name"},
	{"0001", `Bul. "Vitosha" <North>`},
	{""},
}

func TestJSONLines(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewRecordWriter("json", &buf)
	require.NoError(t, err)
	for _, rec := range records {
		require.NoError(t, w.WriteRecord(rec))
	}
	require.NoError(t, w.Flush())

	assert.Equal(t, "[\"stop_id\",\"stop_name\"]\n[\"0001\",\"Bul. \\\"Vitosha\\\" <North>\"]\n[\"\"]\n", buf.String())
}

func TestProtobufRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewRecordWriter("pb", &buf)
	require.NoError(t, err)
	for _, rec := range records {
		require.NoError(t, w.WriteRecord(rec))
	}
	require.NoError(t, w.Flush())

	got, err := ReadProtobufRecords(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestProtobufTruncated(t *testing.T) {
	var buf bytes.Buffer
	w := NewProtobuf(&buf)
	require.NoError(t, w.WriteRecord([]string{"a", "b"}))
	require.NoError(t, w.Flush())

	_, err := ReadProtobufRecords(bytes.NewReader(buf.Bytes()[:buf.Len()-1]))
	assert.Error(t, err)
}

func TestUnknownFormat(t *testing.T) {
	_, err := NewRecordWriter("xml", &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func sampleReport() *gtfs.Report {
	return &gtfs.Report{
		Path: "sofia.zip",
		Files: []gtfs.FileReport{{
			Name:         "stops.txt",
			Header:       []string{"stop_id", "stop_name"},
			Lines:        3,
			Records:      2,
			MinFields:    2,
			MaxFields:    2,
			FailureCount: 1,
			Failures:     []gtfs.LineError{{Line: 3, Column: 6, Reason: gtfs.ReasonAmbiguousField, Message: "bad"}},
			Duration:     1500 * time.Millisecond,
		}},
	}
}

func TestWriteReportYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReportYAML(&buf, sampleReport()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "sofia.zip", decoded["path"])
	assert.Contains(t, buf.String(), "reason: ambiguous_field")
	assert.Contains(t, buf.String(), "duration: 1.5s")
}

func TestWriteReportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReportJSON(&buf, sampleReport()))

	var decoded gtfs.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *sampleReport(), decoded)
}
