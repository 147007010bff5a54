package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `
<table>
<tr>
<td class="tit"><a href="/marketindex/exchangeDetail.naver?marketindexCd=FX_USDKRW">미국 USD</a></td>
<td>1,391.50</td>
<td>1,415.85</td>
<td>1,367.15</td>
<td>1,405.10</td>
<td>1,377.90</td>
</tr>
<tr>
<td><a href="/marketindex/exchangeDetail.naver?marketindexCd=FX_USDKRW">chart row</a></td>
<td>-</td>
</tr>
<tr>
<td class="tit"><a href="/marketindex/exchangeDetail.naver?marketindexCd=FX_JPYKRW">일본 JPY (100엔)</a></td>
<td>931.21</td>
<td>947.50</td>
<td>914.92</td>
<td>940.33</td>
<td>922.09</td>
</tr>
</table>
`

func TestFindRowRequiresTitCell(t *testing.T) {
	rows := rowPattern.FindAllString(sampleHTML, -1)

	row, err := findRow(rows, "FX_USDKRW")
	require.NoError(t, err)
	assert.Contains(t, row, `class="tit"`)
	assert.Contains(t, row, "1,391.50")

	_, err = findRow(rows, "FX_EURKRW")
	assert.Error(t, err)
}

func TestParseRowNumbersSkipsPlaceholders(t *testing.T) {
	row := `<tr><td class="tit">x</td><td>1,391.50</td><td>-</td><td></td><td>2.5</td></tr>`
	assert.Equal(t, []float64{1391.50, 2.5}, parseRowNumbers(row))
}

func TestMarketCode(t *testing.T) {
	assert.Equal(t, "FX_USDKRW", marketCode("USD"))
	assert.Equal(t, "", marketCode("KRW"))
}

func TestBuildSnapshotNormalizesSourceUnits(t *testing.T) {
	// the sample page only carries USD and JPY rows, so trim the scrape to
	// those plus the pivot
	html := sampleHTML

	rows := rowPattern.FindAllString(html, -1)

	usdRow, err := findRow(rows, "FX_USDKRW")
	require.NoError(t, err)

	jpyRow, err := findRow(rows, "FX_JPYKRW")
	require.NoError(t, err)

	usd := parseRowNumbers(usdRow)
	jpy := parseRowNumbers(jpyRow)

	require.Len(t, usd, 5)
	require.Len(t, jpy, 5)

	// USD is quoted per unit, JPY per 100 units
	assert.InDelta(t, 1391.50, usd[0], 1e-9)
	assert.InDelta(t, 9.3121, jpy[0]/100, 1e-9)
}
