package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const chartTemplate = `<html>
<head>
    <script type="text/javascript" src="https://www.gstatic.com/charts/loader.js"></script>
    <script type="text/javascript">
        google.charts.load('current', {'packages':['corechart']});
        google.charts.setOnLoadCallback(drawChart);

        function drawChart() {
            var data = google.visualization.arrayToDataTable(%s);

            var options = {
                title: 'Interval power',
                curveType: 'function',
                legend: { position: 'bottom' }
            };

            var chart = new google.visualization.LineChart(document.getElementById('chart'));

            chart.draw(data, options);
        }
    </script>
</head>
<body>
    <div id="chart" style="width: 1800px; height: 1000px"></div>
</body>
</html>
`

// WriteChart renders the readings table as a standalone Google Charts
// line-chart page, one series per trace. Separator and missing cells
// become nulls, which the chart draws as gaps.
func WriteChart(w io.Writer, readings [][]string) error {
	if len(readings) == 0 {
		return errors.New("no readings to chart")
	}

	head := []any{"Timestamp"}
	for col := 1; col < len(readings[0]); col += 2 {
		head = append(head, strings.TrimSuffix(readings[0][col], " offset"))
	}

	data := make([][]any, 0, len(readings))
	data = append(data, head)
	for t, row := range readings[1:] {
		out := []any{t}
		for col := 2; col < len(row); col += 2 {
			out = append(out, cellValue(row[col]))
		}
		data = append(data, out)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal chart data: %w", err)
	}
	_, err = fmt.Fprintf(w, chartTemplate, payload)
	return err
}

func cellValue(cell string) any {
	v, err := strconv.Atoi(cell)
	if err != nil {
		return nil
	}
	return v
}
