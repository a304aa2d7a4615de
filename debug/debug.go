package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Eval     bool
	Notify   bool
	Batch    bool
	Tx       bool
	Validate bool
}

var d *debug

func init() {
	d = &debug{}
	d.Eval = boolEnv("PROP_DEBUG_EVAL")
	d.Notify = boolEnv("PROP_DEBUG_NOTIFY")
	d.Batch = boolEnv("PROP_DEBUG_BATCH")
	d.Tx = boolEnv("PROP_DEBUG_TX")
	d.Validate = boolEnv("PROP_DEBUG_VALIDATE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Eval() bool {
	return d.Eval
}
func Notify() bool {
	return d.Notify
}
func Batch() bool {
	return d.Batch
}
func Tx() bool {
	return d.Tx
}
func Validate() bool {
	return d.Validate
}
