package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/iotaledger/hive.go/core/kvstore/badger"

	"github.com/groundwire/implicant/collector"
	"github.com/groundwire/implicant/model"
	"github.com/groundwire/implicant/term"
	"github.com/groundwire/implicant/termmgr"
)

const usage = "USAGE: implicant-demo [-store=mem|badger] [-dbdir=<path>]\n"

var (
	storeKind = flag.String("store", "mem", "backing store for the evaluation cache: mem or badger")
	dbdir     = flag.String("dbdir", "implicant-demo.dbdir", "badger directory (only used with -store=badger)")
)

func main() {
	flag.Parse()

	store := term.NewStore()
	mgr := termmgr.New(store)

	p := store.NewUninterpreted("p", true)
	q := store.NewUninterpreted("q", true)
	r := store.NewUninterpreted("r", true)
	x := store.NewUninterpreted("x", false)

	cond := p
	thenBranch := store.NewArithGe0(x)
	elseBranch := store.NewArithEq0(x)
	ite := store.NewIte(cond, thenBranch, elseBranch)
	disjunction := store.NewOr(q, r, ite)

	mem := model.NewMem(store, map[term.Ref]*big.Int{
		p: big.NewInt(1),
		q: big.NewInt(0),
		r: big.NewInt(0),
		x: big.NewInt(3),
	})

	mdl, closeStore, err := openModelStore(mem)
	must(err)
	defer closeStore()

	fmt.Printf("evaluation cache: %s\n", *storeKind)
	fmt.Println("formula: (q or r or ite(p, x>=0, x=0))")
	c := collector.New(store, mdl, mgr)
	var lits []term.Ref
	if err := c.GetImplicants([]term.Ref{disjunction}, &lits); err != nil {
		fmt.Printf("collection failed: %s\n", err)
		return
	}
	fmt.Printf("collected %d literal(s):\n", len(lits))
	for _, l := range lits {
		describeLiteral(store, mdl, l)
	}
}

// openModelStore builds the model.Model the demo evaluates against,
// per -store: mem wraps mem in an in-memory model.Store (exercising
// the cache without touching disk), badger wraps it in a durable
// on-disk one under -dbdir. The returned close func must be called
// once the demo is done with the store.
func openModelStore(mem *model.Mem) (model.Model, func(), error) {
	switch *storeKind {
	case "mem":
		return model.NewInMemoryStore(mem), func() {}, nil
	case "badger":
		db, err := badger.CreateDB(*dbdir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening badger db at %s: %w", *dbdir, err)
		}
		kvs := badger.New(db)
		return model.NewStore(mem, kvs, nil), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown -store %q: must be mem or badger", *storeKind)
	}
}

func must(err error) {
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

func describeLiteral(store *term.Store, mdl model.Model, l term.Ref) {
	sign := "+"
	if !l.Positive() {
		sign = "-"
	}
	v, ok := mdl.Eval(l)
	status := "unknown"
	if ok {
		status = fmt.Sprintf("%v", v.IsTrue())
	}
	fmt.Printf("  %s kind=%s true-in-model=%s\n", sign, store.Kind(l), status)
}
