package propmigrate

import (
	"github.com/cqkv/propmigrate/codec"
	"github.com/cqkv/propmigrate/index"
	"github.com/cqkv/propmigrate/model"
	"github.com/pkg/errors"
)

// Chain is the property list of one node or relationship, in link order
type Chain struct {
	Head model.RecordId
	IDs  []model.RecordId
}

func BuildIndex(records []*model.PropertyRecord) *index.BTree {
	bt := index.NewBTree(0)
	for _, record := range records {
		bt.Put(record)
	}
	return bt
}

// Chains follows NextProp from every record without a previous property.
// Links are only checked, never repaired: a next pointer to a missing record or
// a record that does not point back fails with ErrBrokenChain.
func Chains(idx index.Index) ([]Chain, error) {
	var chains []Chain

	it := idx.Iterator()
	defer it.Close()
	for it.Rewind(); it.Valid(); it.Next() {
		head := it.Record()
		if !codec.IsNoPointer(head.PrevProp) {
			continue
		}
		chain, err := walkChain(idx, head)
		if err != nil {
			return nil, err
		}
		chains = append(chains, chain)
	}
	return chains, nil
}

func walkChain(idx index.Index, head *model.PropertyRecord) (Chain, error) {
	chain := Chain{Head: head.ID}
	cur := head
	for {
		chain.IDs = append(chain.IDs, cur.ID)
		if codec.IsNoPointer(cur.NextProp) {
			return chain, nil
		}

		next := idx.Get(cur.NextProp)
		if next == nil {
			return Chain{}, errors.Wrapf(ErrBrokenChain, "record %d: next property %d is not in use", cur.ID, cur.NextProp)
		}
		// also stops cycles, a revisited record always has another predecessor
		if next.PrevProp != cur.ID {
			return Chain{}, errors.Wrapf(ErrBrokenChain, "record %d: previous property is %d, expected %d", next.ID, next.PrevProp, cur.ID)
		}
		cur = next
	}
}

// Orphans returns the records no chain reaches
func Orphans(idx index.Index, chains []Chain) []model.RecordId {
	reached := make(map[model.RecordId]struct{}, idx.Size())
	for _, chain := range chains {
		for _, id := range chain.IDs {
			reached[id] = struct{}{}
		}
	}

	var orphans []model.RecordId
	it := idx.Iterator()
	defer it.Close()
	for it.Rewind(); it.Valid(); it.Next() {
		if _, ok := reached[it.ID()]; !ok {
			orphans = append(orphans, it.ID())
		}
	}
	return orphans
}
