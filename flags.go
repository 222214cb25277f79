package mettrig

import (
	"strconv"
	"strings"
)

// FloatListFlag collects repeated float-valued flags, e.g. one MET
// threshold per -metcut. Defaults assigned in code are discarded on the
// first explicit use.
type FloatListFlag struct {
	Values []float64
	set    bool
}

func (f *FloatListFlag) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	if !f.set {
		f.set = true
		f.Values = nil
	}
	f.Values = append(f.Values, v)
	return nil
}

func (f *FloatListFlag) String() string {
	ss := make([]string, len(f.Values))
	for i, v := range f.Values {
		ss[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(ss, ",")
}
