package server

import "testing"

func TestFolderEnumeration(t *testing.T) {
	if len(FolderOrder) != len(FolderColors) {
		t.Fatalf("order slice and color map out of sync: %d vs %d",
			len(FolderOrder), len(FolderColors))
	}
	for _, f := range FolderOrder {
		if _, ok := FolderColors[f]; !ok {
			t.Fatalf("ordered key %q missing from color map", f)
		}
	}
	if DefaultFolder() != "amarelo" {
		t.Fatalf("default folder = %q, want amarelo", DefaultFolder())
	}
}

func TestColorForIsPureOverTheEnum(t *testing.T) {
	if got := ColorFor("azul_escuro"); got != "#003366" {
		t.Fatalf("ColorFor(azul_escuro) = %q", got)
	}
	if got := ColorFor("vermelho"); got != "#C50A0A" {
		t.Fatalf("ColorFor(vermelho) = %q", got)
	}
	// 未知键回退到兜底键的颜色
	if got := ColorFor("rosa"); got != "#FFD400" {
		t.Fatalf("ColorFor(unknown) = %q, want default color", got)
	}
}

func TestPlayerDirectoryLifecycle(t *testing.T) {
	d := NewPlayerDirectory()

	d.Register("p1", "Ann", "ciano")
	p, ok := d.Get("p1")
	if !ok || p.Name != "Ann" || p.Folder != "ciano" || p.Color != "#00FFFF" {
		t.Fatalf("unexpected profile: %+v, %v", p, ok)
	}

	// 覆盖注册
	d.Register("p1", "Anna", "verde_claro")
	if p, _ := d.Get("p1"); p.Name != "Anna" || p.Color != "#66FF66" {
		t.Fatalf("re-register must overwrite: %+v", p)
	}

	d.Remove("p1")
	if _, ok := d.Get("p1"); ok {
		t.Fatalf("removed profile still present")
	}
	// 幂等
	d.Remove("p1")
	if d.Len() != 0 {
		t.Fatalf("directory must be empty, len=%d", d.Len())
	}
}
