package main

type SearchCmd struct {
	Query string `arg:"" help:"Text to match against titles and authors"`
}

func (cmd *SearchCmd) Run(g *Globals) error {
	list := ListCmd{Query: cmd.Query}
	return list.Run(g)
}
