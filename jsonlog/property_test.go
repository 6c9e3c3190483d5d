package jsonlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/logio/format"
	"github.com/arloliu/logio/header"
)

func TestLog_TextProperties(t *testing.T) {
	log := NewLog()

	setters := []struct {
		key string
		set func(string)
		get func() string
	}{
		{KeyName, log.SetName, log.Name},
		{KeyDescription, log.SetDescription, log.Description},
		{KeyWell, log.SetWell, log.Well},
		{KeyWellbore, log.SetWellbore, log.Wellbore},
		{KeyField, log.SetField, log.Field},
		{KeyCountry, log.SetCountry, log.Country},
		{KeyOperator, log.SetOperator, log.Operator},
		{KeyServiceCompany, log.SetServiceCompany, log.ServiceCompany},
		{KeyRunNumber, log.SetRunNumber, log.RunNumber},
	}
	for _, tt := range setters {
		t.Run(tt.key, func(t *testing.T) {
			require.Empty(t, tt.get())

			tt.set("value of " + tt.key)
			require.Equal(t, "value of "+tt.key, tt.get())

			s, ok := log.PropertyAsString(tt.key)
			require.True(t, ok)
			require.Equal(t, "value of "+tt.key, s)

			tt.set("")
			require.Empty(t, tt.get())
			_, ok = log.Property(tt.key)
			require.False(t, ok)
		})
	}
}

func TestLog_PropertySoftLookup(t *testing.T) {
	log := NewLog()
	require.NoError(t, log.SetHeaderJSON([]byte(`{
		"elevation": 35.2,
		"runNumber": "7",
		"logged": true,
		"nested": {"a": 1},
		"remark": "not a number"
	}`)))

	f, ok := log.PropertyAsFloat("elevation")
	require.True(t, ok)
	require.Equal(t, 35.2, f)

	i, ok := log.PropertyAsInt("runNumber")
	require.True(t, ok)
	require.Equal(t, int64(7), i)

	b, ok := log.PropertyAsBool("logged")
	require.True(t, ok)
	require.True(t, b)

	s, ok := log.PropertyAsString("elevation")
	require.True(t, ok)
	require.Equal(t, "35.2", s)

	_, ok = log.PropertyAsFloat("remark")
	require.False(t, ok)
	_, ok = log.PropertyAsInt("missing")
	require.False(t, ok)
	_, ok = log.PropertyAsTime("remark")
	require.False(t, ok)
	_, ok = log.PropertyAsString("nested")
	require.False(t, ok)

	v, ok := log.Property("nested")
	require.True(t, ok)
	require.True(t, v.IsObject())
}

func TestLog_Date(t *testing.T) {
	log := NewLog()
	date := time.Date(2019, 6, 14, 0, 0, 0, 0, time.UTC)

	_, ok := log.Date()
	require.False(t, ok)

	log.SetDate(date)
	got, ok := log.Date()
	require.True(t, ok)
	require.True(t, date.Equal(got))

	s, _ := log.PropertyAsString(KeyDate)
	require.Equal(t, "2019-06-14T00:00:00Z", s)

	log.SetDate(time.Time{})
	_, ok = log.Date()
	require.False(t, ok)
}

func TestLog_DeclaredIndex(t *testing.T) {
	t.Run("numeric index", func(t *testing.T) {
		log := newTestLog(t, newTestCurve(t, "DEPTH", format.TypeFloat, 1000.0, 1000.5, 1001.0))

		require.NoError(t, log.SetStartIndex(1000))
		require.NoError(t, log.SetEndIndex(1001.0))
		log.SetStep(0.5)

		start, ok := log.StartIndex()
		require.True(t, ok)
		require.Equal(t, 1000.0, start)

		end, ok := log.EndIndex()
		require.True(t, ok)
		require.Equal(t, 1001.0, end)

		step, ok := log.Step()
		require.True(t, ok)
		require.Equal(t, 0.5, step)

		actualStart, ok := log.ActualStartIndex()
		require.True(t, ok)
		require.Equal(t, 1000.0, actualStart)

		actualEnd, ok := log.ActualEndIndex()
		require.True(t, ok)
		require.Equal(t, 1001.0, actualEnd)

		require.NoError(t, log.SetStartIndex(nil))
		_, ok = log.StartIndex()
		require.False(t, ok)

		require.Error(t, log.SetEndIndex("deep"))
	})

	t.Run("datetime index", func(t *testing.T) {
		t0 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
		log := newTestLog(t, newTestCurve(t, "TIME", format.TypeDateTime, t0, t0.Add(time.Minute)))

		require.NoError(t, log.SetStartIndex(t0))

		start, ok := log.StartIndex()
		require.True(t, ok)
		require.True(t, t0.Equal(start.(time.Time)))

		end, ok := log.ActualEndIndex()
		require.True(t, ok)
		require.True(t, t0.Add(time.Minute).Equal(end.(time.Time)))
	})

	t.Run("empty index", func(t *testing.T) {
		log := newTestLog(t, newTestCurve(t, "DEPTH", format.TypeFloat))

		_, ok := log.ActualStartIndex()
		require.False(t, ok)
		_, ok = log.ActualEndIndex()
		require.False(t, ok)
	})
}

func TestLog_SetStepNaNUnsets(t *testing.T) {
	log := NewLog()
	log.SetStep(0.1524)
	require.NoError(t, log.SetProperty(KeyStep, header.Float(0.1524)))

	log.SetStep(nan())
	_, ok := log.Step()
	require.False(t, ok)
}
