package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/orrery/internal/storage"
)

// TrackCSV writes one body's samples as step,x,y,vx,vy rows.
func TrackCSV(w io.Writer, samples []storage.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "x", "y", "vx", "vy"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Step),
			strconv.FormatFloat(s.X, 'g', -1, 64),
			strconv.FormatFloat(s.Y, 'g', -1, 64),
			strconv.FormatFloat(s.VX, 'g', -1, 64),
			strconv.FormatFloat(s.VY, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
