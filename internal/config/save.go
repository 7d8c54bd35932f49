package config

// fileSchema mirrors the on-disk layout of documentarist.toml. Marshaling a
// struct (rather than the values map) pins the section and key order, which
// keeps repeated saves byte-identical. Must be kept in step with defaults
// in config.go.
type fileSchema struct {
	Documentarist coreSection    `toml:"documentarist"`
	Amazon        serviceSection `toml:"amazon"`
	Google        serviceSection `toml:"google"`
	Microsoft     serviceSection `toml:"microsoft"`
}

type coreSection struct {
	Quiet     string `toml:"quiet"`
	Debug     string `toml:"debug"`
	Basename  string `toml:"basename"`
	Outputdir string `toml:"outputdir"`
}

type serviceSection struct {
	CredsFile string `toml:"creds_file"`
}

func (s *Store) schema() fileSchema {
	core := s.values[SectionCore]
	return fileSchema{
		Documentarist: coreSection{
			Quiet:     core["quiet"],
			Debug:     core["debug"],
			Basename:  core["basename"],
			Outputdir: core["outputdir"],
		},
		Amazon:    serviceSection{CredsFile: s.values["amazon"]["creds_file"]},
		Google:    serviceSection{CredsFile: s.values["google"]["creds_file"]},
		Microsoft: serviceSection{CredsFile: s.values["microsoft"]["creds_file"]},
	}
}
