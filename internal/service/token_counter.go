package service

import (
	"unicode/utf8"

	"github.com/weaviate/tiktoken-go"
)

// TokenCounter cuenta tokens de un texto para recortar la ventana de contexto.
type TokenCounter interface {
	Count(text string) int
}

type tiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTokenCounter usa tiktoken con la codificacion pedida; si no se puede
// cargar, cae a un conteo por runas (cota superior, nunca subestima).
func NewTokenCounter(encoding string) TokenCounter {
	if encoding == "" {
		encoding = "cl100k_base"
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return RuneCounter{}
	}
	return &tiktokenCounter{enc: enc}
}

func (c *tiktokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

// RuneCounter estima un token por runa.
type RuneCounter struct{}

func (RuneCounter) Count(text string) int {
	return utf8.RuneCountInString(text)
}
