package summary

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regplace-bot/internal/jsondoc"
)

func eventJSON(counts [4]int, fees []string) string {
	names := [4]string{"30 км", "20 км", "10 км", "Детский забег"}
	races := make([]string, 4)
	total := 0
	for i := range races {
		fee := ""
		if i < len(fees) && fees[i] != "" {
			fee = fmt.Sprintf(`, "fee": {"base_amount": %s}`, fees[i])
		}
		races[i] = fmt.Sprintf(`{"name": %q, "heats_ready_count": %d%s}`, names[i], counts[i], fee)
		total += counts[i]
	}
	return fmt.Sprintf(`{"event": {"name": "Гонка Лёгкова", "heats_ready_count": %d, "races": [%s]}}`,
		total, strings.Join(races, ","))
}

func TestBuild_EqualFees(t *testing.T) {
	rep, err := Build([]byte(eventJSON([4]int{100, 50, 40, 30}, []string{"1500", "1500", "1500", "500"})))
	require.NoError(t, err)
	assert.Empty(t, rep.Warnings)

	want := "Название гонки: Гонка Лёгкова\n" +
		"Всего зарегистрировано: 220\n" +
		"30 км: 100\n" +
		"20 км: 50\n" +
		"10 км: 40\n" +
		"Детский забег: 30\n" +
		"Стоимость участия: 1500 руб. (до повышения цены осталось 110 слотов)"
	assert.Equal(t, want, rep.Text)
	assert.Equal(t, 1, strings.Count(rep.Text, "Стоимость участия"))
}

func TestBuild_AdultSumUsesThreeDistances(t *testing.T) {
	// 30 km counted once: 200+100+50 = 350 -> mid, 450 left.
	rep, err := Build([]byte(eventJSON([4]int{200, 100, 50, 999}, nil)))
	require.NoError(t, err)
	assert.Equal(t, 350, rep.Event.AdultReadySum)
	assert.Contains(t, rep.Text, "Стоимость участия: 2500 руб. (до повышения цены осталось 450 слотов)")
}

func TestBuild_StaticMaxTier(t *testing.T) {
	rep, err := Build([]byte(eventJSON([4]int{500, 200, 101, 0}, nil)))
	require.NoError(t, err)
	assert.Contains(t, rep.Text, "Стоимость участия: 3500 руб. (слоты продаются по максимальной цене)")
}

func TestBuild_FeeMismatch(t *testing.T) {
	rep, err := Build([]byte(eventJSON([4]int{10, 10, 10, 1}, []string{"1500", "1500", `"2000.00"`})))
	require.NoError(t, err)
	require.Len(t, rep.Warnings, 1)

	var fm *FeeMismatchError
	require.True(t, errors.As(rep.Warnings[0], &fm))
	assert.Len(t, fm.Fees, 3)
	assert.Contains(t, rep.Text, "Стоимость участия: цены на дистанциях не совпадают (1500/1500/2000)")
	assert.NotContains(t, rep.Text, "руб.")
}

func TestBuild_PartialFeesAreAMismatch(t *testing.T) {
	tests := map[string]struct {
		fees   []string
		marker string
	}{
		"last missing":  {fees: []string{"1500", "1500"}, marker: "(1500/1500/—)"},
		"only one":      {fees: []string{"", "2000"}, marker: "(—/2000/—)"},
		"kids fee only": {fees: []string{"", "", "", "500"}, marker: ""},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rep, err := Build([]byte(eventJSON([4]int{1, 1, 1, 1}, tt.fees)))
			require.NoError(t, err)
			if tt.marker == "" {
				assert.Empty(t, rep.Warnings)
				assert.Contains(t, rep.Text, "Стоимость участия: 1500 руб. (до повышения цены осталось 297 слотов)")
				return
			}
			require.Len(t, rep.Warnings, 1)
			var fm *FeeMismatchError
			require.True(t, errors.As(rep.Warnings[0], &fm))
			assert.Len(t, fm.Fees, 3)
			assert.Contains(t, rep.Text, "Стоимость участия: цены на дистанциях не совпадают "+tt.marker)
		})
	}
}

func TestBuild_Malformed(t *testing.T) {
	tests := map[string]string{
		"not json":      `{`,
		"no event":      `{"events": {}}`,
		"three races":   `{"event": {"name": "x", "heats_ready_count": 1, "races": [{"name":"a","heats_ready_count":1},{"name":"b","heats_ready_count":1},{"name":"c","heats_ready_count":1}]}}`,
		"count is text": strings.Replace(eventJSON([4]int{1, 2, 3, 4}, nil), `"heats_ready_count": 2`, `"heats_ready_count": "2"`, 1),
		"races object":  `{"event": {"name": "x", "heats_ready_count": 1, "races": {}}}`,
	}
	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			rep, err := Build([]byte(payload))
			var ee *jsondoc.ExtractionError
			require.True(t, errors.As(err, &ee), "got %v", err)
			assert.Empty(t, rep.Text)
		})
	}
}

func TestBuild_Idempotent(t *testing.T) {
	payload := []byte(eventJSON([4]int{301, 0, 0, 5}, []string{"2500", "2500", "2500"}))
	a, err := Build(payload)
	require.NoError(t, err)
	b, err := Build(payload)
	require.NoError(t, err)
	assert.Equal(t, a.Text, b.Text)
}
