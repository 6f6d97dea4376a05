package services

import (
	"chat-fs/domain"

	"github.com/samber/lo"
)

// PlanBundles groups chunks into runs of at most size chunks, keeping their
// order. The whole plan is known before anything is sent, which lets the
// chain be built from the tail.
func PlanBundles(chunks []domain.Chunk, size int) []domain.Bundle {
	if len(chunks) == 0 {
		return nil
	}
	return lo.Map(lo.Chunk(chunks, size), func(group []domain.Chunk, i int) domain.Bundle {
		return domain.Bundle{Index: i, Chunks: group}
	})
}
