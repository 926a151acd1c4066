package webui

import "context"

// CmdFlags mirrors the server's startup flags. Nothing here interprets them.
type CmdFlags struct {
	F                             bool     `json:"f"`
	UpdateAllExtensions           bool     `json:"update_all_extensions"`
	SkipPythonVersionCheck        bool     `json:"skip_python_version_check"`
	SkipTorchCudaTest             bool     `json:"skip_torch_cuda_test"`
	ReinstallXformers             bool     `json:"reinstall_xformers"`
	ReinstallTorch                bool     `json:"reinstall_torch"`
	UpdateCheck                   bool     `json:"update_check"`
	Tests                         string   `json:"tests"`
	NoTests                       bool     `json:"no_tests"`
	SkipInstall                   bool     `json:"skip_install"`
	DataDir                       string   `json:"data_dir"`
	Config                        string   `json:"config"`
	Ckpt                          string   `json:"ckpt"`
	CkptDir                       string   `json:"ckpt_dir"`
	VAEDir                        string   `json:"vae_dir"`
	GFPGANDir                     string   `json:"gfpgan_dir"`
	GFPGANModel                   string   `json:"gfpgan_model"`
	NoHalf                        bool     `json:"no_half"`
	NoHalfVAE                     bool     `json:"no_half_vae"`
	NoProgressbarHiding           bool     `json:"no_progressbar_hiding"`
	MaxBatchCount                 int      `json:"max_batch_count"`
	EmbeddingsDir                 string   `json:"embeddings_dir"`
	TextualInversionTemplatesDir  string   `json:"textual_inversion_templates_dir"`
	HypernetworkDir               string   `json:"hypernetwork_dir"`
	LocalizationsDir              string   `json:"localizations_dir"`
	AllowCode                     bool     `json:"allow_code"`
	MedVRAM                       bool     `json:"medvram"`
	LowVRAM                       bool     `json:"lowvram"`
	LowRAM                        bool     `json:"lowram"`
	AlwaysBatchCondUncond         bool     `json:"always_batch_cond_uncond"`
	UnloadGFPGAN                  bool     `json:"unload_gfpgan"`
	Precision                     string   `json:"precision"`
	UpcastSampling                bool     `json:"upcast_sampling"`
	Share                         bool     `json:"share"`
	Ngrok                         string   `json:"ngrok"`
	NgrokRegion                   string   `json:"ngrok_region"`
	EnableInsecureExtensionAccess bool     `json:"enable_insecure_extension_access"`
	CodeformerModelsPath          string   `json:"codeformer_models_path"`
	GFPGANModelsPath              string   `json:"gfpgan_models_path"`
	ESRGANModelsPath              string   `json:"esrgan_models_path"`
	BSRGANModelsPath              string   `json:"bsrgan_models_path"`
	RealESRGANModelsPath          string   `json:"realesrgan_models_path"`
	ClipModelsPath                string   `json:"clip_models_path"`
	Xformers                      bool     `json:"xformers"`
	ForceEnableXformers           bool     `json:"force_enable_xformers"`
	XformersFlashAttention        bool     `json:"xformers_flash_attention"`
	DeepDanbooru                  bool     `json:"deepdanbooru"`
	OptSplitAttention             bool     `json:"opt_split_attention"`
	OptSubQuadAttention           bool     `json:"opt_sub_quad_attention"`
	SubQuadQChunkSize             int      `json:"sub_quad_q_chunk_size"`
	SubQuadKVChunkSize            int      `json:"sub_quad_kv_chunk_size"`
	SubQuadChunkThreshold         int      `json:"sub_quad_chunk_threshold"`
	OptSplitAttentionInvokeAI     bool     `json:"opt_split_attention_invokeai"`
	OptSplitAttentionV1           bool     `json:"opt_split_attention_v1"`
	OptSDPAttention               bool     `json:"opt_sdp_attention"`
	OptSDPNoMemAttention          bool     `json:"opt_sdp_no_mem_attention"`
	DisableOptSplitAttention      bool     `json:"disable_opt_split_attention"`
	DisableNaNCheck               bool     `json:"disable_nan_check"`
	UseCPU                        []string `json:"use_cpu"`
	Listen                        bool     `json:"listen"`
	Port                          int      `json:"port"`
	ShowNegativePrompt            bool     `json:"show_negative_prompt"`
	UIConfigFile                  string   `json:"ui_config_file"`
	HideUIDirConfig               bool     `json:"hide_ui_dir_config"`
	FreezeSettings                bool     `json:"freeze_settings"`
	UISettingsFile                string   `json:"ui_settings_file"`
	GradioDebug                   bool     `json:"gradio_debug"`
	GradioAuth                    string   `json:"gradio_auth"`
	GradioAuthPath                string   `json:"gradio_auth_path"`
	GradioImg2ImgTool             string   `json:"gradio_img2img_tool"`
	GradioInpaintTool             string   `json:"gradio_inpaint_tool"`
	OptChannelsLast               bool     `json:"opt_channelslast"`
	StylesFile                    string   `json:"styles_file"`
	Autolaunch                    bool     `json:"autolaunch"`
	Theme                         string   `json:"theme"`
	UseTextboxSeed                bool     `json:"use_textbox_seed"`
	DisableConsoleProgressbars    bool     `json:"disable_console_progressbars"`
	EnableConsolePrompts          bool     `json:"enable_console_prompts"`
	VAEPath                       string   `json:"vae_path"`
	DisableSafeUnpickle           bool     `json:"disable_safe_unpickle"`
	API                           bool     `json:"api"`
	APIAuth                       string   `json:"api_auth"`
	APILog                        bool     `json:"api_log"`
	NoWebUI                       bool     `json:"nowebui"`
	UIDebugMode                   bool     `json:"ui_debug_mode"`
	DeviceID                      string   `json:"device_id"`
	Administrator                 bool     `json:"administrator"`
	CORSAllowOrigins              string   `json:"cors_allow_origins"`
	CORSAllowOriginsRegex         string   `json:"cors_allow_origins_regex"`
	TLSKeyfile                    string   `json:"tls_keyfile"`
	TLSCertfile                   string   `json:"tls_certfile"`
	ServerName                    string   `json:"server_name"`
	GradioQueue                   bool     `json:"gradio_queue"`
	NoGradioQueue                 bool     `json:"no_gradio_queue"`
	SkipVersionCheck              bool     `json:"skip_version_check"`
	NoHashing                     bool     `json:"no_hashing"`
	NoDownloadSDModel             bool     `json:"no_download_sd_model"`
	ControlNetDir                 string   `json:"controlnet_dir"`
	ControlNetAnnotatorModelsPath string   `json:"controlnet_annotator_models_path"`
	NoHalfControlNet              bool     `json:"no_half_controlnet"`
	LDSRModelsPath                string   `json:"ldsr_models_path"`
	LoraDir                       string   `json:"lora_dir"`
	SCUNetModelsPath              string   `json:"scunet_models_path"`
	SwinIRModelsPath              string   `json:"swinir_models_path"`
}

func (c *Client) CmdFlags(ctx context.Context) (CmdFlags, error) {
	return call[CmdFlags](ctx, c, CmdFlagsEndpoint, nil)
}
