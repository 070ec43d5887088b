package snapshot

// Seed is one niche and the search queries used to sample it.
type Seed struct {
	Niche   string
	Queries []string
}

// Seeds is the fixed query table, in the order queries are issued.
var Seeds = []Seed{
	{Niche: "Entretenimento", Queries: []string{"história narrada", "história emocionante", "história de vida"}},
	{Niche: "Relações Humanas", Queries: []string{"relacionamento", "traição", "término"}},
	{Niche: "Educação", Queries: []string{"curiosidades", "história explicada", "caso real"}},
	{Niche: "Espiritualidade", Queries: []string{"oração", "mensagem bíblica", "devocional"}},
	{Niche: "Finanças", Queries: []string{"renda extra", "dinheiro", "finanças pessoais"}},
	{Niche: "Música / Áudio", Queries: []string{"worship", "lofi", "instrumental"}},
	{Niche: "Saúde / Bem-estar", Queries: []string{"ansiedade", "sono", "relaxamento"}},
	{Niche: "Mistério / Curiosidade", Queries: []string{"mistério", "caso real", "true crime"}},
	{Niche: "Tecnologia", Queries: []string{"inteligência artificial", "ferramentas", "automação"}},
	{Niche: "Lifestyle", Queries: []string{"rotina", "vida simples", "minimalismo"}},
}

type seedQuery struct {
	niche string
	query string
}

// flattenSeeds returns at most limit (niche, query) pairs in table order.
func flattenSeeds(seeds []Seed, limit int) []seedQuery {
	var out []seedQuery
	for _, s := range seeds {
		for _, q := range s.Queries {
			if len(out) >= limit {
				return out
			}
			out = append(out, seedQuery{niche: s.Niche, query: q})
		}
	}
	return out
}
