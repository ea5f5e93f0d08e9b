// Package factory is a small generic registry that instantiates adapters by
// format name. Each factory receives the raw settings of its config section
// and decodes them into a typed struct.
//
//	reg := factory.NewRegistry[extract.DocumentSource]()
//	reg.Register("pdf", func(conf map[string]any) (extract.DocumentSource, error) {
//	    var c struct{ Glob string `json:"glob"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return pdf.NewSource(c.Glob), nil
//	})
//	src, err := reg.Create(factory.ModuleConfig{Type: "pdf"})
package factory
