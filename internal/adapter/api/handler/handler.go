package handler

import (
	"github.com/ahmetyavas01/SahaBul/internal/usecase"
)

var (
	userHandler        *UserHandler
	matchHandler       *MatchHandler
	participantHandler *ParticipantHandler
	chatHandler        *ChatHandler
)

func Setup(
	userUseCase *usecase.UserUseCase,
	matchUseCase *usecase.MatchUseCase,
	participantUseCase *usecase.ParticipantUseCase,
	chatUseCase *usecase.ChatUseCase,
) {
	userHandler = NewUserHandler(userUseCase)
	matchHandler = NewMatchHandler(matchUseCase)
	participantHandler = NewParticipantHandler(participantUseCase)
	chatHandler = NewChatHandler(chatUseCase)
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetMatchHandler() *MatchHandler {
	return matchHandler
}

func GetParticipantHandler() *ParticipantHandler {
	return participantHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}
