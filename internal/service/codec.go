package service

import (
	"strings"

	"huff"
	"huff/internal/report"
	"huff/pkg/logger"
)

type CodecService struct {
	log logger.Logger
}

func NewCodecService(l logger.Logger) *CodecService {
	return &CodecService{log: l}
}

func (s *CodecService) Compress(src []byte) ([]byte, error) {
	out, err := huff.Compress(src)
	if err != nil {
		s.log.Errorf("compress %d bytes: %v", len(src), err)
		return nil, err
	}
	s.log.Debugf("compressed %d -> %d bytes", len(src), len(out))
	return out, nil
}

func (s *CodecService) Decompress(data []byte) ([]byte, error) {
	out, err := huff.Decompress(data)
	if err != nil {
		s.log.Errorf("decompress %d bytes: %v", len(data), err)
		return nil, err
	}
	s.log.Debugf("decompressed %d -> %d bytes", len(data), len(out))
	return out, nil
}

func (s *CodecService) Report(src []byte) (*report.Report, error) {
	return report.Analyze(src)
}

// SymbolCode is one row of a code listing.
type SymbolCode struct {
	Symbol byte   `json:"symbol"`
	Count  uint64 `json:"count"`
	Bits   int    `json:"bits"`
	Code   string `json:"code"`
}

type Codes struct {
	Symbols []SymbolCode `json:"symbols"`
	Tree    string       `json:"tree"`
}

// Codes builds the tree for src and lists the code of every symbol it holds.
func (s *CodecService) Codes(src []byte) (*Codes, error) {
	f := huff.CountFrequencies(src)
	root := huff.BuildTree(f)
	table := huff.GenerateCodes(root)

	res := &Codes{Symbols: []SymbolCode{}}
	for sym, c := range table {
		if c.BitLength == 0 {
			continue
		}
		res.Symbols = append(res.Symbols, SymbolCode{
			Symbol: byte(sym),
			Count:  f[sym],
			Bits:   c.BitLength,
			Code:   c.String(),
		})
	}

	var sb strings.Builder
	if err := huff.FormatTree(&sb, root); err != nil {
		return nil, err
	}
	res.Tree = sb.String()
	return res, nil
}
