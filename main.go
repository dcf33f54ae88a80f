package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var inputEPSG int

var rootCmd = &cobra.Command{
	Use:   "rsimplify",
	Short: "Reduce the geometric complexity of vector geospatial features",
	Long: `rsimplify reduces the geometric complexity of vector geospatial
features (points, lines, polygons) with vertex-reduction simplification,
polygon buffering and feature union/dissolve, reading and writing GeoJSON.

The pipeline subcommand replays the full demonstration: simplifying a
regional boundary, dissolving adjacent administrative regions, and shrinking
a dense noise-level polygon layer, rendering before/after comparison plots
and reporting memory footprints along the way.`,
	SilenceUsage: true,
}

var infoCmd = &cobra.Command{
	Use:   "info <file.geojson>",
	Short: "Report feature count, vertex count and memory footprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layer, err := LoadLayer(args[0], inputEPSG)
		if err != nil {
			return err
		}
		s := layer.Stats()
		b := layer.Bound()
		log.Printf("Layer %q (EPSG:%d)\n", layer.Name, layer.EPSG)
		log.Printf("   Features: %d\n", s.Features)
		log.Printf("   Vertices: %d (avg %.1f per feature)\n", s.Vertices, s.AvgVertices)
		log.Printf("   Memory:   %.1f KiB\n", float64(s.MemoryBytes)/1024)
		log.Printf("   Bounds:   (%.6f, %.6f) to (%.6f, %.6f)\n",
			b.Min[0], b.Min[1], b.Max[0], b.Max[1])
		return nil
	},
}

var reprojectTo int

var reprojectCmd = &cobra.Command{
	Use:   "reproject <in.geojson> <out.geojson>",
	Short: "Reproject a layer to another EPSG coordinate reference system",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		layer, err := LoadLayer(args[0], inputEPSG)
		if err != nil {
			return err
		}
		out, err := Reproject(layer, reprojectTo)
		if err != nil {
			return err
		}
		return SaveLayer(out, args[1])
	},
}

var (
	simplifyAlgorithm string
	simplifyTolerance float64
	simplifyKeep      float64
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify <in.geojson> <out.geojson>",
	Short: "Reduce vertex counts with Douglas-Peucker or Visvalingam-Whyatt",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		layer, err := LoadLayer(args[0], inputEPSG)
		if err != nil {
			return err
		}

		var out *Layer
		switch simplifyAlgorithm {
		case "dp":
			out, err = SimplifyDouglasPeucker(layer, simplifyTolerance)
		case "vw":
			if simplifyKeep > 0 {
				out, err = SimplifyKeepFraction(layer, simplifyKeep)
			} else {
				out, err = SimplifyVisvalingam(layer, simplifyTolerance)
			}
		default:
			return fmt.Errorf("unknown algorithm %q (want dp or vw)", simplifyAlgorithm)
		}
		if err != nil {
			return err
		}
		return SaveLayer(out, args[1])
	},
}

var (
	bufferDistance float64
	bufferSegments int
)

var bufferCmd = &cobra.Command{
	Use:   "buffer <in.geojson> <out.geojson>",
	Short: "Offset polygon boundaries outward or inward by a distance",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		layer, err := LoadLayer(args[0], inputEPSG)
		if err != nil {
			return err
		}
		out, err := BufferLayer(layer, bufferDistance, bufferSegments)
		if err != nil {
			return err
		}
		return SaveLayer(out, args[1])
	},
}

var dissolveCmd = &cobra.Command{
	Use:   "dissolve <in.geojson> <out.geojson>",
	Short: "Merge overlapping or adjacent polygons into single features",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		layer, err := LoadLayer(args[0], inputEPSG)
		if err != nil {
			return err
		}
		out, err := Dissolve(layer)
		if err != nil {
			return err
		}
		return SaveLayer(out, args[1])
	},
}

var renderCmd = &cobra.Command{
	Use:   "render <out.png|out.svg> <in.geojson> [more.geojson...]",
	Short: "Draw one or more layers side by side as a comparison plot",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		layers := make([]*Layer, 0, len(args)-1)
		for _, path := range args[1:] {
			layer, err := LoadLayer(path, inputEPSG)
			if err != nil {
				return err
			}
			layers = append(layers, layer)
		}
		return RenderComparison(args[0], layers...)
	},
}

var (
	pipelineData   string
	pipelineOut    string
	pipelineEPSG   int
	pipelineBuffer float64
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the full demonstration over the sample datasets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunPipeline(pipelineData, pipelineOut, pipelineEPSG, pipelineBuffer)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&inputEPSG, "epsg", 4326,
		"EPSG code of input file coordinates")

	reprojectCmd.Flags().IntVar(&reprojectTo, "to", 3857, "target EPSG code")

	simplifyCmd.Flags().StringVar(&simplifyAlgorithm, "algorithm", "dp",
		"simplification algorithm: dp (Douglas-Peucker) or vw (Visvalingam-Whyatt)")
	simplifyCmd.Flags().Float64Var(&simplifyTolerance, "tolerance", 0,
		"tolerance in map units (dp) or squared map units (vw); 0 auto-estimates for dp")
	simplifyCmd.Flags().Float64Var(&simplifyKeep, "keep", 0,
		"fraction of vertices to keep per geometry (vw only)")

	bufferCmd.Flags().Float64Var(&bufferDistance, "distance", 0,
		"offset distance in map units, negative shrinks")
	bufferCmd.Flags().IntVar(&bufferSegments, "segments", DefaultBufferSegments,
		"arc points per quarter circle on round joins")
	bufferCmd.MarkFlagRequired("distance")

	pipelineCmd.Flags().StringVar(&pipelineData, "data", "data", "directory holding the sample datasets")
	pipelineCmd.Flags().StringVar(&pipelineOut, "out", "out", "directory for plots and simplified outputs")
	pipelineCmd.Flags().IntVar(&pipelineEPSG, "to", 3857, "projected EPSG code used for metric operations")
	pipelineCmd.Flags().Float64Var(&pipelineBuffer, "buffer", 100, "buffer distance in map units for the noise stage")

	rootCmd.AddCommand(infoCmd, reprojectCmd, simplifyCmd, bufferCmd,
		dissolveCmd, renderCmd, pipelineCmd)
}

func main() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
