package i18n

var ptBRCatalog = &Catalog{
	locale: "pt-BR",
	messages: map[Code]string{
		CodeOutOfRange:      "{{if .Index}}A oferta de revenda {{.Index}} não existe{{else if .TicketID}}O ingresso {{.TicketID}} não existe{{else}}Valor fora do intervalo{{end}}",
		CodeAlreadyOwned:    "O ingresso {{.TicketID}} já foi vendido",
		CodePaymentMismatch: "O pagamento de {{.Paid}} não corresponde ao preço de {{.Price}}",
		CodeNotOwner:        "Você não possui o ingresso necessário",
		CodeNoPendingOffer:  "Não há oferta de troca para o ingresso {{.TicketID}}",
		CodeStaleOffer:      "Esta oferta não é mais válida",

		CodeCallerRequired: "É necessário informar a conta de origem",
		CodeCallerInvalid:  "As credenciais da conta são inválidas",

		CodeLedgerNotCreated:        "O livro de ingressos ainda não foi criado",
		CodeLedgerAlreadyCreated:    "O livro de ingressos já existe",
		CodeLedgerParametersInvalid: "Parâmetros do livro de ingressos inválidos",

		CodeNotFound: "Recurso não encontrado",
	},
}
