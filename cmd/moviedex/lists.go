package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"moviedex/internal/library"
)

type toggleResult struct {
	List    library.List `json:"list"`
	MovieID int64        `json:"movie_id"`
	InList  bool         `json:"in_list"`
}

func (r toggleResult) Table() ([]string, [][]string) {
	return []string{"List", "Movie", "In list"}, [][]string{
		{string(r.List), strconv.FormatInt(r.MovieID, 10), strconv.FormatBool(r.InList)},
	}
}

func (a *app) listsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage favorites, watchlist and watched (login required)",
	}
	cmd.AddCommand(a.listsToggleCmd(), a.listsShowCmd())
	return cmd
}

func (a *app) listsToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <favorites|watchlist|watched> <id>",
		Short: "Add a movie to a list, or remove it if already there",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			list, err := library.ParseList(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			if _, err := a.requireUser(ctx); err != nil {
				return err
			}
			cat, err := a.catalogService(ctx)
			if err != nil {
				return err
			}
			if _, err := cat.SelectMovie(id); err != nil {
				return err
			}
			lists, err := a.libraryService(ctx)
			if err != nil {
				return err
			}
			in, err := lists.Toggle(ctx, list, id)
			if err != nil {
				return err
			}
			return a.printer.Success(toggleResult{List: list, MovieID: id, InList: in}, nil)
		},
	}
}

func (a *app) listsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <favorites|watchlist|watched>",
		Short: "Show the movies in a list",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			list, err := library.ParseList(args[0])
			if err != nil {
				return err
			}
			if _, err := a.requireUser(ctx); err != nil {
				return err
			}
			cat, err := a.catalogService(ctx)
			if err != nil {
				return err
			}
			lists, err := a.libraryService(ctx)
			if err != nil {
				return err
			}
			ms, err := lists.Movies(ctx, list, cat)
			if err != nil {
				return err
			}
			return a.printer.Success(movieRows(ms), map[string]any{"list": list, "count": len(ms)})
		},
	}
}
