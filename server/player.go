package server

// PlayerID 玩家唯一标识（加入时生成的 UUID）
type PlayerID string

// FolderColors 支持的外观文件夹与对应的预览颜色（十六进制）
var FolderColors = map[string]string{
	"amarelo":      "#FFD400",
	"azul_escuro":  "#003366",
	"ciano":        "#00FFFF",
	"laranja":      "#FF8C00",
	"marron":       "#8B4513",
	"verde_claro":  "#66FF66",
	"verde_escuro": "#006400",
	"vermelho":     "#C50A0A",
}

// FolderOrder 外观键的固定顺序；Go 的 map 不保序，兜底键必须显式钉住
var FolderOrder = []string{
	"amarelo",
	"azul_escuro",
	"ciano",
	"laranja",
	"marron",
	"verde_claro",
	"verde_escuro",
	"vermelho",
}

// DefaultFolder 非法或缺失外观键时的兜底值（枚举中的第一个键）
func DefaultFolder() string {
	return FolderOrder[0]
}

// IsAllowedFolder 外观键是否在枚举内
func IsAllowedFolder(folder string) bool {
	_, ok := FolderColors[folder]
	return ok
}

// ColorFor 外观键到颜色的纯函数；未知键回退到兜底键的颜色
func ColorFor(folder string) string {
	if c, ok := FolderColors[folder]; ok {
		return c
	}
	return FolderColors[DefaultFolder()]
}

// Profile 玩家档案：名字、外观键与派生颜色
type Profile struct {
	Name   string
	Folder string
	Color  string
}

// PlayerDirectory 玩家档案目录：纯存取，不做校验（校验归会话协议层）
// 并发保护由 World 的单一互斥域提供
type PlayerDirectory struct {
	players map[PlayerID]Profile
}

func NewPlayerDirectory() *PlayerDirectory {
	return &PlayerDirectory{players: make(map[PlayerID]Profile)}
}

// Register 写入（或覆盖）档案；颜色由外观键派生
func (d *PlayerDirectory) Register(id PlayerID, name, folder string) {
	d.players[id] = Profile{Name: name, Folder: folder, Color: ColorFor(folder)}
}

// Get 查询档案
func (d *PlayerDirectory) Get(id PlayerID) (Profile, bool) {
	p, ok := d.players[id]
	return p, ok
}

// Remove 删除档案；不存在时为 no-op
func (d *PlayerDirectory) Remove(id PlayerID) {
	delete(d.players, id)
}

// Len 当前档案数
func (d *PlayerDirectory) Len() int {
	return len(d.players)
}
