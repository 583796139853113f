// readcorrect-demo drives the read error-correction core (package dispatch)
// end to end over a FASTA or FASTQ file, using the in-memory reference
// FM-index (package memindex) in place of a real indexed collection.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/readcorrect/core"
	"github.com/biogo/readcorrect/dispatch"
	"github.com/biogo/readcorrect/internal/dnaseq"
	"github.com/biogo/readcorrect/internal/memindex"
	"github.com/biogo/readcorrect/metrics"
)

var (
	inFile     string
	fastq      bool
	outFile    string
	discard    string
	algorithm  string
	kmerLength int

	numKmerRounds    int
	numOverlapRounds int
	minOverlap       int
	minIdentity      float64
	conflictCutoff   float64
	depthFilter      int
	printOverlaps    bool
	collectMetrics   bool
	defaultSupport   int

	logger *log.Logger
)

func init() {
	flag.StringVar(&inFile, "in", "", "Input FASTA/FASTQ file.")
	flag.BoolVar(&fastq, "fastq", false, "Treat -in as FASTQ rather than FASTA.")
	flag.StringVar(&outFile, "out", "", "File to receive corrected reads (stdout if empty).")
	flag.StringVar(&discard, "discard", "", "File to receive QC-fail reads (corrected sink if empty).")

	flag.StringVar(&algorithm, "algorithm", "kmer", "Correction algorithm: kmer, overlap, or hybrid.")
	flag.IntVar(&kmerLength, "k", 16, "K-mer length for k-mer correction and seed enumeration.")

	flag.IntVar(&numKmerRounds, "kmer-rounds", 10, "Maximum k-mer correction rounds per read.")
	flag.IntVar(&numOverlapRounds, "overlap-rounds", 3, "Maximum overlap correction rounds per read.")
	flag.IntVar(&minOverlap, "min-overlap", 20, "Minimum overlap length to accept.")
	flag.Float64Var(&minIdentity, "min-identity", 0.95, "Minimum overlap identity in [0,1] to accept.")
	flag.Float64Var(&conflictCutoff, "conflict-cutoff", 0.2, "Legacy consensus conflict cutoff.")
	flag.IntVar(&depthFilter, "depth-filter", 10000, "Legacy overlap pile depth filter; 0 disables it.")
	flag.BoolVar(&printOverlaps, "print-overlaps", false, "Log each accepted overlap.")
	flag.BoolVar(&collectMetrics, "metrics", true, "Accumulate and print per-base error metrics.")
	flag.IntVar(&defaultSupport, "default-support", 2, "Default required k-mer support for every phred value.")
}

func initLog() {
	logger = log.New(os.Stderr, fmt.Sprintf("%s: ", filepath.Base(os.Args[0])), log.Flags())
}

func parseAlgorithm(s string) core.Algorithm {
	switch strings.ToLower(s) {
	case "kmer":
		return core.KMER
	case "overlap":
		return core.OVERLAP
	case "hybrid":
		return core.HYBRID
	default:
		logger.Fatalf("unknown algorithm %q (want kmer, overlap, or hybrid)", s)
		panic("unreachable")
	}
}

func main() {
	flag.Parse()
	initLog()

	if inFile == "" {
		logger.Fatalln("no input file given (-in)")
	}

	reads, err := loadReads()
	if err != nil {
		logger.Fatalf("loading %s: %v", inFile, err)
	}
	logger.Printf("loaded %d reads from %s", len(reads), inFile)

	idx := memindex.New(seqs(reads))
	qt := newStaticQualityTable(defaultSupport)

	params := core.Params{
		Algorithm:        parseAlgorithm(algorithm),
		KmerLength:       kmerLength,
		NumKmerRounds:    numKmerRounds,
		NumOverlapRounds: numOverlapRounds,
		MinOverlap:       minOverlap,
		MinIdentity:      minIdentity,
		ConflictCutoff:   conflictCutoff,
		DepthFilter:      depthFilter,
		PrintOverlaps:    printOverlaps,
	}

	d := dispatch.New(idx, qt, idx, idx)

	correctedSink, closeSink := openSink(outFile, os.Stdout)
	defer closeSink()

	var discardSink io.Writer
	if discard != "" {
		sink, closeDiscard := openSink(discard, nil)
		defer closeDiscard()
		discardSink = sink
	}

	pp := metrics.NewPostProcessor(correctedSink, discardSink)

	for _, r := range reads {
		res, err := d.Correct(r, params)
		if err != nil {
			logger.Fatalf("correcting read %s: %v", r.ID, err)
		}
		if err := pp.Process(r, res, collectMetrics); err != nil {
			logger.Fatalf("writing read %s: %v", r.ID, err)
		}
	}

	snap := pp.Snapshot()
	logger.Printf("kmer_pass=%d overlap_pass=%d qc_fail=%d", snap.KmerPass, snap.OverlapPass, snap.QCFail)
	if collectMetrics {
		overall, meanPerPosition := snap.ErrorRate()
		logger.Printf("error_rate=%.4f mean_per_position_error_rate=%.4f", overall, meanPerPosition)
	}
}

func loadReads() ([]core.Read, error) {
	if fastq {
		return dnaseq.ReadFastq(inFile)
	}
	f, err := os.Open(inFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dnaseq.ReadFasta(f)
}

func seqs(reads []core.Read) []string {
	out := make([]string, len(reads))
	for i, r := range reads {
		out[i] = r.Seq
	}
	return out
}

func openSink(name string, fallback io.Writer) (io.Writer, func()) {
	if name == "" {
		if fallback == nil {
			return io.Discard, func() {}
		}
		return fallback, func() {}
	}
	f, err := os.Create(name)
	if err != nil {
		logger.Fatalf("creating %s: %v", name, err)
	}
	return f, func() { f.Close() }
}
