// Command bio-svgt genotypes structural-variant catalogs against long-read
// alignments.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"v.io/x/lib/cmdline"
)

var log = logrus.New()

func main() {
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	root := &cmdline.Command{
		Name:     "bio-svgt",
		Short:    "structural-variant genotyper",
		Long:     "bio-svgt assigns per-sample genotypes to a catalog of candidate structural variants from long-read alignments.",
		Children: []*cmdline.Command{newCmdGenotype(), newCmdPileupIndex()},
	}
	cmdline.Main(root)
	os.Exit(0)
}
