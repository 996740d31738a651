package metrics

import (
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the games one agent played
type Summary struct {
	Agent     int
	Games     int
	MeanScore float64
	StdScore  float64
	MeanMoves float64
	BestScore float64
	MaxTile   int
}

func Summarize(agent int, records []GameRecord) Summary {
	records = lo.Filter(records, func(r GameRecord, _ int) bool { return r.Agent == agent })
	if len(records) == 0 {
		return Summary{Agent: agent}
	}
	scores := lo.Map(records, func(r GameRecord, _ int) float64 { return r.Score })
	moves := lo.Map(records, func(r GameRecord, _ int) float64 { return float64(r.TotalMoves) })

	mean, std := stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		std = 0
	}
	return Summary{
		Agent:     agent,
		Games:     len(records),
		MeanScore: mean,
		StdScore:  std,
		MeanMoves: stat.Mean(moves, nil),
		BestScore: lo.Max(scores),
		MaxTile:   lo.MaxBy(records, func(a, b GameRecord) bool { return a.MaxTile > b.MaxTile }).MaxTile,
	}
}
