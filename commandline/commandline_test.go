// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"testing"
)

func TestStringList(t *testing.T) {
	var flags flag.FlagSet
	flags.Init("test", flag.ContinueOnError)
	var a, b stringList
	flags.Var(&a, "a", "usage")
	flags.Var(&b, "b", "usage")
	if err := flags.Parse([]string{"-a", "x=1", "-a=y=2", "-a", "z"}); err != nil {
		t.Error(err)
	}
	want := []string{"x=1", "y=2", "z"}
	if len(a) != len(want) {
		t.Fatalf("a = %v, want %v", a, want)
	}
	for i := range want {
		if a[i] != want[i] {
			t.Errorf("a[%d] = %v, want %v", i, a[i], want[i])
		}
	}
	if len(b) != 0 {
		t.Errorf("b = %v, want empty", b)
	}
	if a.String() != "x=1,y=2,z" {
		t.Errorf("a.String() = %q", a.String())
	}
}
