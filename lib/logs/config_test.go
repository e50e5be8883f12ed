package logs

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestGetDefLogConf(t *testing.T) {
	cfg := GetDefLogConf()
	if cfg.Module != "xcontrol" || cfg.Level != "debug" {
		t.Fatalf("unexpected default conf: %+v", cfg)
	}
}

func TestLoadLogConf(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "log.yaml")
	data := []byte("module: ctl\nlevel: warn\nfilepath: " + dir + "\nrotateinterval: 0\n")
	if err := ioutil.WriteFile(file, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadLogConf(file)
	if err != nil {
		t.Fatalf("load log config failed.err:%v", err)
	}
	if cfg.Module != "ctl" || cfg.Level != "warn" || cfg.RotateInterval != 0 {
		t.Fatalf("unexpected conf: %+v", cfg)
	}
	// 未配置的字段保留默认值
	if cfg.Fmt != "logfmt" {
		t.Fatalf("default fmt lost: %+v", cfg)
	}

	if _, err := OpenLog(cfg); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadLogConf(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expect error for missing file")
	}
}
