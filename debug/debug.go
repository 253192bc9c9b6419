package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Compare bool
	Merge   bool
	Edits   bool
	Session bool
	Parse   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Compare = boolEnv("CATDIFF_DEBUG_COMPARE")
	d.Merge = boolEnv("CATDIFF_DEBUG_MERGE")
	d.Edits = boolEnv("CATDIFF_DEBUG_EDITS")
	d.Session = boolEnv("CATDIFF_DEBUG_SESSION")
	d.Parse = boolEnv("CATDIFF_DEBUG_PARSE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Compare() bool {
	return d.Compare
}
func Merge() bool {
	return d.Merge
}
func Edits() bool {
	return d.Edits
}
func Session() bool {
	return d.Session
}
func Parse() bool {
	return d.Parse
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
