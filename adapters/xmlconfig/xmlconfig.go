// Package xmlconfig reads and writes the <modeltime> XML element.
package xmlconfig

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"modeltime/core/modeltime"
	"modeltime/internal/errors"
)

// ElementName is the name of the element holding the time configuration
const ElementName = "modeltime"

// Parser decodes modeltime configuration from XML
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a parser. A nil logger discards warnings.
func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger}
}

// fields maps child element names onto configuration fields
func fields(cfg *modeltime.Config) map[string]*int {
	return map[string]*int{
		"startyear":    &cfg.StartYear,
		"interyear1":   &cfg.InterYear1,
		"interyear2":   &cfg.InterYear2,
		"endyear":      &cfg.EndYear,
		"timestep1":    &cfg.TimeStep1,
		"timestep2":    &cfg.TimeStep2,
		"timestep3":    &cfg.TimeStep3,
		"dataend":      &cfg.DataEndYear,
		"datatimestep": &cfg.DataTimeStep,
	}
}

// Parse reads the first <modeltime> element found in r. Unknown child
// elements are logged and skipped; values that are not integers fail.
func (p *Parser) Parse(r io.Reader) (modeltime.Config, error) {
	var cfg modeltime.Config
	dec := xml.NewDecoder(r)

	if err := seek(dec); err != nil {
		return cfg, err
	}

	targets := fields(&cfg)
	for {
		tok, err := dec.Token()
		if err != nil {
			return cfg, errors.Parsing("read modeltime element", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			var text string
			if err := dec.DecodeElement(&text, &t); err != nil {
				return cfg, errors.Parsing("read <"+name+">", err)
			}

			dst, ok := targets[name]
			if !ok {
				p.logger.Warn("unrecognized element found while parsing modeltime",
					zap.String("element", name))
				continue
			}

			v, err := strconv.Atoi(strings.TrimSpace(text))
			if err != nil {
				return cfg, errors.Parsing("invalid integer in <"+name+">", err).
					WithContext("element", name).
					WithContext("value", text)
			}
			*dst = v

		case xml.EndElement:
			return cfg, nil
		}
	}
}

// seek advances dec past the opening <modeltime> tag.
func seek(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return errors.NotFound("element", "<"+ElementName+">")
		}
		if err != nil {
			return errors.Parsing("seek modeltime element", err)
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == ElementName {
			return nil
		}
	}
}

type inputDoc struct {
	XMLName      xml.Name `xml:"modeltime"`
	StartYear    int      `xml:"startyear"`
	InterYear1   int      `xml:"interyear1"`
	InterYear2   int      `xml:"interyear2"`
	EndYear      int      `xml:"endyear"`
	TimeStep1    int      `xml:"timestep1"`
	TimeStep2    int      `xml:"timestep2"`
	TimeStep3    int      `xml:"timestep3"`
	DataEndYear  int      `xml:"dataend"`
	DataTimeStep int      `xml:"datatimestep"`
}

func newInputDoc(cfg modeltime.Config) inputDoc {
	return inputDoc{
		StartYear:    cfg.StartYear,
		InterYear1:   cfg.InterYear1,
		InterYear2:   cfg.InterYear2,
		EndYear:      cfg.EndYear,
		TimeStep1:    cfg.TimeStep1,
		TimeStep2:    cfg.TimeStep2,
		TimeStep3:    cfg.TimeStep3,
		DataEndYear:  cfg.DataEndYear,
		DataTimeStep: cfg.DataTimeStep,
	}
}

type debugDoc struct {
	inputDoc
	PeriodToTimeStep  int `xml:"periodToTimeStep"`
	DataOffset        int `xml:"dataOffset"`
	ModelPeriodToYear int `xml:"modelPeriodToYear"`
}

// WriteInput writes cfg as a <modeltime> element that Parse reads back.
func WriteInput(w io.Writer, cfg modeltime.Config) error {
	return write(w, newInputDoc(cfg))
}

// WriteDebug writes the configuration together with the derived values of one period.
// Periods past the end of the data grid report a data offset of 0.
func WriteDebug(w io.Writer, mt *modeltime.Modeltime, period int) error {
	if period < 0 || period >= mt.MaxPeriod() {
		return errors.Newf(errors.TypeInput, "period %d outside [0, %d)", period, mt.MaxPeriod())
	}

	doc := debugDoc{
		inputDoc:          newInputDoc(mt.Config()),
		PeriodToTimeStep:  mt.TimeStep(period),
		ModelPeriodToYear: mt.PeriodToYear(period),
	}
	if period < mt.MaxDataPeriod() {
		doc.DataOffset = mt.DataOffset(period)
	}
	return write(w, doc)
}

func write(w io.Writer, doc any) error {
	out, err := xml.MarshalIndent(doc, "", "\t")
	if err != nil {
		return errors.Internal("encode modeltime", err)
	}
	if _, err := fmt.Fprintf(w, "%s\n", out); err != nil {
		return errors.Internal("write modeltime", err)
	}
	return nil
}
