package csv

import (
	"strings"
	"testing"
)

var (
	benchStopTime = "TM12_3_0815,08:15:00,08:15:30,STOP_1024,17,,0,0,1.234"
	benchQuoted   = `1024,"Bul. ""Vitosha"", North",42.6977,23.3219,,"Sofia, BG",0`
	benchSink     []string
)

func BenchmarkSplitLine(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		benchSink, _ = SplitLine(benchStopTime, ',')
	}
}

func BenchmarkSplitLineInto(b *testing.B) {
	dst := make([]string, 0, DefaultFieldCapacity)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		dst, _ = SplitLineInto(dst, benchStopTime, ',')
	}
	benchSink = dst
}

func BenchmarkSplitLineQuoted(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		benchSink, _ = SplitLine(benchQuoted, ',')
	}
}

func BenchmarkReader(b *testing.B) {
	lines := strings.Split(strings.Repeat(benchStopTime+"\n", 1000), "\n")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := NewReader(sliceSource(lines...), ReaderOptions{ReuseRecord: true})
		for {
			ok, _ := r.Advance()
			if !ok {
				break
			}
		}
		_ = r.Close()
	}
}
