package generators

import (
	"github.com/tiktoken-go/tokenizer"
)

type TokenCounter = func(text string) (int, error)

type BPETokenCounter TokenCounter

func (Module) BPETokenCounter() BPETokenCounter {
	enc, err := tokenizer.Get(tokenizer.O200kBase)
	if err != nil {
		return func(string) (int, error) {
			return 0, err
		}
	}
	return func(text string) (int, error) {
		return enc.Count(text)
	}
}
