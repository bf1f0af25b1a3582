// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/vulncorrelator/database/repositories"
	"github.com/l3montree-dev/vulncorrelator/normalize"
	"github.com/l3montree-dev/vulncorrelator/services"
	"github.com/l3montree-dev/vulncorrelator/shared"
	"github.com/l3montree-dev/vulncorrelator/transformer"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var errSbomNotFound = errors.New("sbom not found")

func newGraphCommand() *cobra.Command {
	graph := &cobra.Command{
		Use:   "graph",
		Short: "Query stored sbom dependency graphs",
	}
	graph.AddCommand(
		newGraphRenderCommand(),
		newGraphTraversalCommand("ancestors", "List the nodes depending on a node, nearest first", (*services.AnalysisService).Ancestors),
		newGraphTraversalCommand("descendants", "List the dependencies of a node, nearest first", (*services.AnalysisService).Descendants),
		newGraphRootsCommand(),
		newGraphAnalyzeCommand(),
	)
	return graph
}

// withAnalysis runs fn against a fresh analysis service.
func withAnalysis(cmd *cobra.Command, fn func(*services.AnalysisService, shared.DB) error) error {
	return withDatabase(cmd, func(db shared.DB) error {
		return fn(newAnalysisService(db), db)
	})
}

func newGraphRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <sbomID>",
		Short: "Render a stored sbom graph as graphviz dot or CycloneDX json",
		Example: `  correlator-cli graph render my-sbom > graph.dot
  correlator-cli graph render my-sbom --format cyclonedx > bom.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAnalysis(cmd, func(s *services.AnalysisService, _ shared.DB) error {
				out := cmd.OutOrStdout()
				switch strings.ToLower(runtimeConfig.Format) {
				case "", "dot":
					dot, found, err := s.RenderDot(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					if !found {
						return errors.Wrap(errSbomNotFound, args[0])
					}
					_, err = io.WriteString(out, dot)
					return err
				case "cyclonedx":
					bom, found, err := s.RenderCycloneDX(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					if !found {
						return errors.Wrap(errSbomNotFound, args[0])
					}
					enc := cdx.NewBOMEncoder(out, cdx.BOMFileFormatJSON)
					enc.SetPretty(true)
					return enc.Encode(bom)
				}
				return errors.Errorf("unknown format %q, expected dot or cyclonedx", runtimeConfig.Format)
			})
		},
	}
	cmd.Flags().StringP("format", "f", "dot", "Output format: dot or cyclonedx")
	return cmd
}

type traversalFunc func(s *services.AnalysisService, ctx context.Context, sbomID, ref string, depth int) ([]normalize.GraphNode, bool, error)

func newGraphTraversalCommand(use, short string, traverse traversalFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <sbomID> <ref>",
		Short: short,
		Long: short + `.

ref is a node id, a purl or a cpe. A purl without version matches every version.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAnalysis(cmd, func(s *services.AnalysisService, _ shared.DB) error {
				nodes, found, err := traverse(s, cmd.Context(), args[0], args[1], runtimeConfig.Depth)
				if err != nil {
					return err
				}
				if !found {
					return errors.Wrap(errSbomNotFound, args[0])
				}
				return printNodes(cmd.OutOrStdout(), nodes)
			})
		},
	}
	cmd.Flags().IntP("depth", "d", -1, "Maximum depth, negative means unbounded")
	addOutputFlag(cmd)
	return cmd
}

func newGraphRootsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roots <sbomID>",
		Short: "List the root components of a stored sbom",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAnalysis(cmd, func(s *services.AnalysisService, _ shared.DB) error {
				nodes, found, err := s.RootComponents(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !found {
					return errors.Wrap(errSbomNotFound, args[0])
				}
				return printNodes(cmd.OutOrStdout(), nodes)
			})
		},
	}
	addOutputFlag(cmd)
	return cmd
}

func newGraphAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <sbomID>",
		Short: "Correlate every node of a stored sbom against the stored status assertions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAnalysis(cmd, func(s *services.AnalysisService, db shared.DB) error {
				var bar *progressbar.ProgressBar
				results, found, err := s.AnalyzeSbom(cmd.Context(), args[0], func(done, total int) {
					if bar == nil {
						bar = progressbar.Default(int64(total), "correlating")
					}
					bar.Set(done) // nolint: errcheck
				})
				if bar != nil {
					bar.Finish() // nolint: errcheck
				}
				if err != nil {
					return err
				}
				if !found {
					return errors.Wrap(errSbomNotFound, args[0])
				}

				var ids []string
				for _, r := range results {
					for _, c := range r.Correlations {
						ids = append(ids, transformer.VulnerabilityIDs(c.Matches)...)
					}
				}
				vulns, err := repositories.NewVulnerabilityRepository(db).FindByIDs(cmd.Context(), lo.Uniq(ids))
				if err != nil {
					return err
				}

				dto := transformer.NodeCorrelationsToDTO(results, transformer.VulnerabilitiesByID(vulns))
				if runtimeConfig.Output == "json" {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(dto)
				}
				for _, n := range dto {
					printCorrelations(cmd.OutOrStdout(), n.Correlations)
				}
				return nil
			})
		},
	}
	addOutputFlag(cmd)
	return cmd
}

func printNodes(w io.Writer, nodes []normalize.GraphNode) error {
	dto := transformer.GraphNodesToDTO(nodes)
	if runtimeConfig.Output == "json" {
		return json.NewEncoder(w).Encode(dto)
	}
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Node", "Name", "Version", "Purls"})
	for _, n := range dto {
		tw.AppendRow(table.Row{n.NodeID, n.Name, n.Version, strings.Join(n.Purls, "\n")})
	}
	fmt.Fprintln(w, tw.Render())
	return nil
}
