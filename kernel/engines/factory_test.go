package engines

import (
	"errors"
	"testing"

	xconf "github.com/xuperchain/xcontrol/kernel/common/xconfig"
)

type fakeEngine struct {
	initErr error
	inited  bool
}

func (f *fakeEngine) Init(*xconf.EnvConf) error {
	f.inited = true
	return f.initErr
}

func (f *fakeEngine) Exit() {}

func TestCreateBCEngine(t *testing.T) {
	Register("fake", func() BCEngine { return &fakeEngine{} })
	Register("broken", func() BCEngine { return &fakeEngine{initErr: errors.New("broken")} })

	if _, err := CreateBCEngine("fake", nil); err == nil {
		t.Fatal("expect error for nil env config")
	}
	if _, err := CreateBCEngine("none", xconf.GetDefEnvConf()); err == nil {
		t.Fatal("expect error for unknown engine")
	}
	if _, err := CreateBCEngine("broken", xconf.GetDefEnvConf()); err == nil {
		t.Fatal("expect init error")
	}
	engine, err := CreateBCEngine("fake", xconf.GetDefEnvConf())
	if err != nil {
		t.Fatal(err)
	}
	if !engine.(*fakeEngine).inited {
		t.Fatal("engine not initialized")
	}

	list := Engines()
	if len(list) != 2 || list[0] != "broken" || list[1] != "fake" {
		t.Fatalf("unexpected engines %v", list)
	}
}
