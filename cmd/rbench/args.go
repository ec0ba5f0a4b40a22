package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/c2h5oh/datasize"

	"github.com/egor9814/rawbench"
)

// parseRunSpec reads SIZE[:LABEL]. A bare number is MiB; anything else
// goes through datasize ("512MB", "2GB") and must be whole MiB.
func parseRunSpec(arg string) (rawbench.RunSpec, error) {
	size, label, _ := strings.Cut(arg, ":")
	var mb int
	if n, err := strconv.Atoi(size); err == nil {
		mb = n
	} else {
		bs, err := datasize.ParseString(size)
		if err != nil {
			return rawbench.RunSpec{}, fmt.Errorf("invalid run size %q: %v", size, err)
		}
		if bs.Bytes()%rawbench.MiB != 0 {
			return rawbench.RunSpec{}, fmt.Errorf("run size %q is not a whole number of MiB", size)
		}
		mb = int(bs.Bytes() / rawbench.MiB)
	}
	if mb <= 0 {
		return rawbench.RunSpec{}, fmt.Errorf("run size %q must be positive", size)
	}
	if len(label) == 0 {
		label = (datasize.ByteSize(mb) * datasize.MB).String()
	}
	return rawbench.RunSpec{SizeMB: mb, Label: label}, nil
}

func parseRunSpecs(args []string) ([]rawbench.RunSpec, error) {
	if len(args) == 0 {
		return rawbench.DefaultSuite(), nil
	}
	specs := make([]rawbench.RunSpec, 0, len(args))
	for _, it := range args {
		spec, err := parseRunSpec(it)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseBytes(s string) (int, error) {
	bs, err := datasize.ParseString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %v", s, err)
	}
	return int(bs.Bytes()), nil
}

func formatBytes(n uint64) string {
	return datasize.ByteSize(n).HumanReadable()
}
