package envutil

import "github.com/drone/envsubst"

// ExpandEnv substitutes ${VAR} references in user supplied values
// such as mirror URLs and output paths.
func ExpandEnv(s string) string {
	val, _ := envsubst.EvalEnv(s)
	return val
}
