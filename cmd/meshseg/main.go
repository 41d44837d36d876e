package main

import (
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/unixpickle/essentials"
	"github.com/yujie-tao/meshseg"
	"github.com/yujie-tao/meshseg/plyio"
)

var defaultInputs = []string{"knife", "scissors", "binoculars", "knob", "mug"}

var (
	inputs  []string
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "meshseg",
	Short: "Hierarchical fuzzy-clustering mesh segmentation",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range inputs {
			if err := segmentOne(name); err != nil {
				return errors.Wrapf(err, "segment %q", name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringSliceVarP(&inputs, "input", "i", defaultInputs,
		"base name of a mesh to segment (reads <name>.ply, writes <name>-output.ply)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log progress for each segmentation round")
}

func segmentOne(name string) error {
	log.Println("reading", name+".ply")
	f, err := os.Open(name + ".ply")
	if err != nil {
		return meshseg.WrapError(meshseg.InputFormat, err, "open input")
	}
	defer f.Close()

	mesh, err := plyio.Read(f)
	if err != nil {
		return err
	}

	var model *meshseg.Model
	meshseg.Elapsed("compute_shortest "+name, func() {
		model, err = meshseg.NewModel(mesh.Vertices, mesh.Faces)
	})
	if err != nil {
		return err
	}

	log.Println("segmenting", name)
	meshseg.Elapsed("segment "+name, func() {
		meshseg.Run(model, verbose)
	})
	log.Printf("%s: %d labels", name, model.LabelNums)

	out, err := os.Create(name + "-output.ply")
	if err != nil {
		return meshseg.WrapError(meshseg.OutputIO, err, "create output")
	}

	labelOf := func(faceIdx int) int { return model.Faces[faceIdx].Label }
	if err := plyio.Write(out, model, labelOf); err != nil {
		out.Close()
		return err
	}

	essentials.Must(out.Close())
	log.Println("wrote", name+"-output.ply")
	return nil
}
