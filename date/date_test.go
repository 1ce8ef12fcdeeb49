package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	// usually time.Time are not comparable (there is a pointer for the timezone) this
	// tests also checks that the property remain true
	assert.Equal(t, d1.time(), d2.time())
	assert.Equal(t, d1, d2)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2024/03/01", want: New(2024, time.March, 1)},
		{in: "2024/3/1", want: New(2024, time.March, 1)},
		{in: "2021-03-05", want: New(2021, time.March, 5)},
		{in: " 2021/12/31 ", want: New(2021, time.December, 31)},
		{in: "03/01/2024", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate_String(t *testing.T) {
	assert.Equal(t, "2021/03/05", New(2021, time.March, 5).String())
	assert.Equal(t, "2024/03/01", New(2024, time.February, 30).String(), "normalized")
}

func TestDate_Arithmetic(t *testing.T) {
	d := New(2024, time.March, 1)
	assert.Equal(t, New(2024, time.February, 29), d.Add(-1))
	assert.Equal(t, -5, d.Add(-5).Sub(d))
	assert.Equal(t, 1, d.Sub(d.Add(-1)))
	assert.True(t, d.Add(-1).Before(d))
	assert.True(t, d.After(d.Add(-1)))
	assert.True(t, Date{}.IsZero())
	assert.False(t, d.IsZero())
}

func TestDate_JSON(t *testing.T) {
	d := New(2021, time.March, 5)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2021/03/05"`, string(data))

	var got Date
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, d, got)

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &got))
	assert.Error(t, json.Unmarshal([]byte(`12`), &got))

	require.NoError(t, json.Unmarshal([]byte(`"2024-02-13"`), &got))
	assert.Equal(t, New(2024, time.February, 13), got)

	for _, zero := range []string{`null`, `""`} {
		got = d
		require.NoError(t, json.Unmarshal([]byte(zero), &got))
		assert.True(t, got.IsZero(), zero)
	}

	data, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))
}
