package webui

// Defaults supplies the baseline generation settings copied into new
// txt2img, img2img and controlnet bodies.
type Defaults struct {
	Sampler  string
	Width    int
	Height   int
	Steps    int
	CfgScale float64
	Seed     int64
}

var StandardDefaults = Defaults{
	Sampler:  "Euler a",
	Width:    960,
	Height:   540,
	Steps:    20,
	CfgScale: 7,
	Seed:     -1,
}

const (
	DefaultControlNetModule = "none"
	DefaultControlNetModel  = "control_v11f1p_sd15_depth_fp16 [4b72d323]"
)
