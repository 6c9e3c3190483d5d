package jsonlog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/logio/errs"
	"github.com/arloliu/logio/format"
)

func render(t *testing.T, opts []WriterOption, logs ...*Log) string {
	t.Helper()

	var buf bytes.Buffer
	w, err := NewWriter(&buf, opts...)
	require.NoError(t, err)
	for _, log := range logs {
		require.NoError(t, w.Write(log))
	}
	require.NoError(t, w.Close())

	return buf.String()
}

func newGammaRayLog(t *testing.T) *Log {
	t.Helper()

	depth, err := NewCurve("DEPTH", format.TypeFloat, WithQuantity("length"), WithUnit("m"))
	require.NoError(t, err)
	gr, err := NewCurve("GR", format.TypeFloat, WithDescription("Gamma ray"), WithUnit("gAPI"))
	require.NoError(t, err)

	for i, v := range []any{45.1, nil, 78.333} {
		require.NoError(t, depth.AddValue(float64(100*(i+1))))
		require.NoError(t, gr.AddValue(v))
	}

	log := newTestLog(t, depth, gr)
	log.SetName("Run 1")
	log.SetWell("A-1")

	return log
}

const gammaRayPretty = `[
  {
    "header": {
      "name": "Run 1",
      "well": "A-1"
    },
    "curves": [
      {
        "name": "DEPTH",
        "description": null,
        "quantity": "length",
        "unit": "m",
        "valueType": "float",
        "dimensions": 1
      },
      {
        "name": "GR",
        "description": "Gamma ray",
        "quantity": null,
        "unit": "gAPI",
        "valueType": "float",
        "dimensions": 1
      }
    ],
    "data": [
      [100, 45.1000],
      [200,    null],
      [300, 78.3330]
    ]
  }
]
`

const gammaRayDense = `[{"header":{"name":"Run 1","well":"A-1"},"curves":[` +
	`{"name":"DEPTH","description":null,"quantity":"length","unit":"m","valueType":"float","dimensions":1},` +
	`{"name":"GR","description":"Gamma ray","quantity":null,"unit":"gAPI","valueType":"float","dimensions":1}],` +
	`"data":[[100,45.1000],[200,   null],[300,78.3330]]}]` + "\n"

func TestWriter_Pretty(t *testing.T) {
	require.Equal(t, gammaRayPretty, render(t, nil, newGammaRayLog(t)))
}

func TestWriter_Dense(t *testing.T) {
	got := render(t, []WriterOption{WithPretty(false)}, newGammaRayLog(t))

	require.Equal(t, gammaRayDense, got)
}

func TestWriter_Indentation(t *testing.T) {
	got := render(t, []WriterOption{WithIndentation(4)}, newGammaRayLog(t))

	require.Contains(t, got, "\n    {\n        \"header\": {\n            \"name\": \"Run 1\",")
	require.Contains(t, got, "\n            [100, 45.1000],\n")

	flat := render(t, []WriterOption{WithIndentation(0)}, newGammaRayLog(t))
	require.Contains(t, flat, "\n{\n\"header\": {\n\"name\": \"Run 1\",")
}

func TestWriter_EmptyLog(t *testing.T) {
	want := `[
  {
    "header": {},
    "curves": [],
    "data": [
    ]
  }
]
`
	require.Equal(t, want, render(t, nil, NewLog()))
	require.Equal(t, "[{\"header\":{},\"curves\":[],\"data\":[]}]\n",
		render(t, []WriterOption{WithPretty(false)}, NewLog()))
}

func TestWriter_MultipleLogs(t *testing.T) {
	got := render(t, nil, newGammaRayLog(t), NewLog())

	require.Contains(t, got, "      [300, 78.3330]\n    ]\n  },\n  {\n    \"header\": {},")
	require.True(t, strings.HasSuffix(got, "    \"data\": [\n    ]\n  }\n]\n"))
}

func TestWriter_NestedHeader(t *testing.T) {
	log := NewLog()
	require.NoError(t, log.SetHeaderJSON([]byte(`{"a":[1,{"b":null}],"e":[],"o":{},"s":"x"}`)))

	want := `    "header": {
      "a": [
        1,
        {
          "b": null
        }
      ],
      "e": [],
      "o": {},
      "s": "x"
    },
`
	require.Contains(t, render(t, nil, log), want)
	require.Contains(t, render(t, []WriterOption{WithPretty(false)}, log),
		`"header":{"a":[1,{"b":null}],"e":[],"o":{},"s":"x"}`)
}

func TestWriter_ValueTypes(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	timeCurve := newTestCurve(t, "TIME", format.TypeDateTime, t0, t0.Add(time.Second))
	count := newTestCurve(t, "COUNT", format.TypeInteger, 5, 120)
	flag := newTestCurve(t, "FLAG", format.TypeBoolean, true, false)
	lith := newTestCurve(t, "LITH", format.TypeString, "sand", `sh"ale`)
	img, err := NewCurve("IMG", format.TypeFloat, WithDimensions(2))
	require.NoError(t, err)
	require.NoError(t, img.AddValues(1.5, 2.25))
	require.NoError(t, img.AddValues(12.0, nil))

	log := newTestLog(t, timeCurve, count, flag, lith, img)
	got := render(t, []WriterOption{WithPretty(false)}, log)

	require.Contains(t, got, `"data":[`+
		`["2024-01-01T00:00:00Z",  5, true,   "sand",[ 1.5000, 2.2500]],`+
		`["2024-01-01T00:00:01Z",120,false,"sh\"ale",[12.0000,   null]]]`)
	require.Contains(t, got, `"valueType":"datetime","dimensions":1`)
	require.Contains(t, got, `{"name":"IMG","description":null,"quantity":null,"unit":null,"valueType":"float","dimensions":2}`)
}

func TestWriter_CurveLengthsFollowIndex(t *testing.T) {
	depth := newTestCurve(t, "DEPTH", format.TypeFloat, 1.0, 2.0, 3.0)
	short := newTestCurve(t, "SHORT", format.TypeInteger, 7)
	long := newTestCurve(t, "LONG", format.TypeInteger, 1, 2, 3, 4, 5)

	got := render(t, []WriterOption{WithPretty(false)}, newTestLog(t, depth, short, long))

	require.Contains(t, got, `"data":[[1,   7,1],[2,null,2],[3,null,3]]`)
}

func TestWriter_TenthStepIndex(t *testing.T) {
	depth := newTestCurve(t, "DEPTH", format.TypeFloat)
	for i := 0; i < 4; i++ {
		require.NoError(t, depth.AddValue(1000.0+0.1*float64(i)))
	}

	got := render(t, []WriterOption{WithPretty(false)}, newTestLog(t, depth))

	require.Contains(t, got, `"data":[[1000.0],[1000.1],[1000.2],[1000.3]]`)
}

func TestWriter_ColumnAlignment(t *testing.T) {
	depth := newTestCurve(t, "DEPTH", format.TypeFloat)
	gr := newTestCurve(t, "GR", format.TypeFloat)
	for i := 0; i < 200; i++ {
		require.NoError(t, depth.AddValue(95+0.5*float64(i)))
		if i%7 == 0 {
			gr.AddNull()
			continue
		}
		require.NoError(t, gr.AddValue(float64(i*i)/13))
	}

	got := render(t, nil, newTestLog(t, depth, gr))

	var width int
	rows := 0
	for _, line := range strings.Split(got, "\n") {
		if !strings.HasPrefix(line, "      [") {
			continue
		}
		line = strings.TrimSuffix(line, ",")
		if width == 0 {
			width = len(line)
		}
		require.Len(t, line, width, "row %d is misaligned: %q", rows, line)
		rows++
	}
	require.Equal(t, 200, rows)
}

func TestWriter_StreamingEquivalence(t *testing.T) {
	const total = 10000
	const batch = 1000

	value := func(i int) float64 { return float64(11 + (i*7)%87) }

	depth := newTestCurve(t, "DEPTH", format.TypeFloat)
	gr := newTestCurve(t, "GR", format.TypeFloat)
	log := newTestLog(t, depth, gr)
	log.SetName("stream")

	for i := 0; i < total; i++ {
		require.NoError(t, depth.AddValue(float64(10000+i)))
		require.NoError(t, gr.AddValue(value(i)))
	}
	whole := render(t, nil, log)

	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)

	for start := 0; start < total; start += batch {
		log.ClearCurves()
		for i := start; i < start+batch; i++ {
			require.NoError(t, depth.AddValue(float64(10000+i)))
			require.NoError(t, gr.AddValue(value(i)))
		}
		if start == 0 {
			require.NoError(t, w.Write(log))
		} else {
			require.NoError(t, w.Append(log))
		}
	}
	require.NoError(t, w.Close())

	require.Equal(t, whole, buf.String())
}

func TestWriter_AppendEmptyBatch(t *testing.T) {
	log := newGammaRayLog(t)

	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.Write(NewLog()))
	require.NoError(t, w.Append(NewLog()))
	require.Equal(t, stateOpenEmpty, w.state)

	require.NoError(t, w.Write(log))
	require.Equal(t, stateOpenWithData, w.state)
	require.NoError(t, w.Close())
}

func TestWriter_StateGuards(t *testing.T) {
	t.Run("append before write", func(t *testing.T) {
		w, err := NewWriter(&bytes.Buffer{})
		require.NoError(t, err)

		err = w.Append(newGammaRayLog(t))
		require.ErrorIs(t, err, errs.ErrWriterNotOpen)
		require.ErrorIs(t, err, errs.ErrIllegalState)
	})

	t.Run("use after close", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := NewWriter(&buf)
		require.NoError(t, err)
		require.NoError(t, w.Write(newGammaRayLog(t)))
		require.NoError(t, w.Close())
		n := buf.Len()

		require.ErrorIs(t, w.Write(newGammaRayLog(t)), errs.ErrWriterClosed)
		require.ErrorIs(t, w.Append(newGammaRayLog(t)), errs.ErrWriterClosed)
		require.NoError(t, w.Close())
		require.Equal(t, n, buf.Len(), "nothing may be written after close")
	})

	t.Run("close unopened", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := NewWriter(&buf)
		require.NoError(t, err)

		require.NoError(t, w.Close())
		require.Zero(t, buf.Len())
		require.ErrorIs(t, w.Write(NewLog()), errs.ErrWriterClosed)
	})

	t.Run("nil log", func(t *testing.T) {
		w, err := NewWriter(&bytes.Buffer{})
		require.NoError(t, err)

		require.ErrorIs(t, w.Write(nil), errs.ErrInvalidArgument)
		require.ErrorIs(t, w.Append(nil), errs.ErrInvalidArgument)
	})

	t.Run("append with other curve layout", func(t *testing.T) {
		w, err := NewWriter(&bytes.Buffer{})
		require.NoError(t, err)
		require.NoError(t, w.Write(newGammaRayLog(t)))

		other := newTestLog(t, newTestCurve(t, "DEPTH", format.TypeFloat, 1.0))
		require.ErrorIs(t, w.Append(other), errs.ErrInvalidArgument)
	})
}

func TestNewWriter_Options(t *testing.T) {
	_, err := NewWriter(nil)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = NewWriter(&bytes.Buffer{}, WithIndentation(-1))
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = NewWriter(&bytes.Buffer{}, WithBufferSize(0))
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	w, err := NewWriter(&bytes.Buffer{}, WithPretty(false), WithIndentation(-1))
	require.NoError(t, err)
	require.False(t, w.cfg.Pretty())
	require.Zero(t, w.cfg.Indentation())

	_, err = NewFileWriter("")
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

var errBoom = errors.New("disk on fire")

type failingWriter struct{ after int }

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.after <= 0 {
		return 0, errBoom
	}
	f.after--

	return len(p), nil
}

func TestWriter_IOErrorsAreReturnedVerbatim(t *testing.T) {
	w, err := NewWriter(&failingWriter{})
	require.NoError(t, err)
	require.Equal(t, errBoom, w.Write(newGammaRayLog(t)))

	w, err = NewWriter(&failingWriter{after: 1})
	require.NoError(t, err)
	require.NoError(t, w.Write(newGammaRayLog(t)))
	require.Equal(t, errBoom, w.Close())
}

func TestNewFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "well.json")

	w, err := NewFileWriter(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err), "file is created by the first write")

	require.NoError(t, w.Write(newGammaRayLog(t)))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, gammaRayPretty, string(data))
}

func TestNewFileWriter_CreateError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "well.json")

	w, err := NewFileWriter(path)
	require.NoError(t, err)

	err = w.Write(newGammaRayLog(t))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
	require.NoError(t, w.Close())
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", `""`},
		{"plain", `"plain"`},
		{`a"b`, `"a\"b"`},
		{`c:\logs`, `"c:\\logs"`},
		{"line\nbreak\ttab\rret", `"line\nbreak\ttab\rret"`},
		{"bell\x07", `"bell\u0007"`},
		{"grønn / 井", `"grønn / 井"`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, quote(tt.in))
		})
	}
}

func BenchmarkWriter_Write(b *testing.B) {
	for _, rows := range []int{100, 10000} {
		b.Run(fmt.Sprintf("rows=%d", rows), func(b *testing.B) {
			log := NewLog()
			depth, _ := NewCurve("DEPTH", format.TypeFloat)
			gr, _ := NewCurve("GR", format.TypeFloat)
			for i := 0; i < rows; i++ {
				_ = depth.AddValue(1000 + 0.1524*float64(i))
				_ = gr.AddValue(float64(i%150) + 0.25)
			}
			_ = log.AddCurve(depth)
			_ = log.AddCurve(gr)

			var buf bytes.Buffer
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				buf.Reset()
				w, _ := NewWriter(&buf)
				_ = w.Write(log)
				_ = w.Close()
			}
		})
	}
}
