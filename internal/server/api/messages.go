package api

// User-facing messages, pt-BR.
const (
	msgMissingFields    = "Preencha todos os campos."
	msgEmailTaken       = "E-mail já cadastrado."
	msgRegistered       = "Usuário registrado com sucesso"
	msgRegisterFailed   = "Erro ao registrar usuário."
	msgUserNotFound     = "Usuário não encontrado."
	msgWrongPassword    = "Senha incorreta."
	msgServerError      = "Erro no servidor."
	msgInvalidRequest   = "Requisição inválida."
	msgTaskNotFound     = "Tarefa não encontrada."
	msgEmptyTaskText    = "O texto da tarefa não pode ser vazio."
	msgTaskFailed       = "Erro ao processar tarefa."
	msgMissingToken     = "Token não fornecido."
	msgInvalidToken     = "Token inválido."
	msgExpiredToken     = "Token expirado."
	msgRouteNotFound    = "Rota não encontrada."
	msgMethodNotAllowed = "Método não permitido."
)
