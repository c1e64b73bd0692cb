package handler

import (
	"errors"
	"fmt"

	"github.com/rl1809/stock-control/internal/core/domain"
	"github.com/rl1809/stock-control/internal/core/service"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is the user-visible result of an operation.
type Notice struct {
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func info(title, format string, args ...any) Notice {
	return Notice{Level: LevelInfo, Title: title, Message: fmt.Sprintf(format, args...)}
}

func AddNotice(name string, item domain.StockItem, err error) Notice {
	if err != nil {
		return failureNotice("adding item", name, err)
	}
	return info("Success", "Item '%s' added successfully!", item.Name)
}

func RemoveNotice(name string, err error) Notice {
	if err != nil {
		return failureNotice("removing item", name, err)
	}
	return info("Success", "Item '%s' removed successfully!", name)
}

func WithdrawNotice(name string, w domain.Withdrawal, err error) Notice {
	if err != nil {
		return failureNotice("withdrawing item", name, err)
	}
	return info("Success", "%d units of item '%s' withdrawn successfully!", w.Withdrawn, w.Name)
}

func EditNotice(name string, e domain.Edit, err error) Notice {
	if err != nil {
		return failureNotice("editing item", name, err)
	}
	return info("Success", "Item '%s' updated to '%s' with %d units!", e.Name, e.Item.Name, e.Item.Quantity)
}

func SearchNotice(name string, item domain.StockItem, err error) Notice {
	if err != nil {
		return failureNotice("searching item", name, err)
	}
	return info("Item Found", "Item '%s' has %d units in stock.", item.Name, item.Quantity)
}

func ListNotice(err error) Notice {
	return failureNotice("refreshing the item list", "", err)
}

func CodeNotice(subject string, err error) Notice {
	return failureNotice("generating the code for "+subject, "", err)
}

func failureNotice(action, name string, err error) Notice {
	warn := func(format string, args ...any) Notice {
		return Notice{Level: LevelWarning, Title: "Error", Message: fmt.Sprintf(format, args...)}
	}

	switch {
	case errors.Is(err, service.ErrInvalidNumber):
		return warn("Please enter a numeric value for the quantity.")
	case errors.Is(err, service.ErrInvalidInput):
		return warn("Please enter a valid name and a non-negative quantity.")
	case errors.Is(err, service.ErrMissingName):
		return warn("Please enter an item name.")
	case errors.Is(err, service.ErrNotFound):
		return warn("Item '%s' not found.", name)
	case errors.Is(err, service.ErrInsufficientStock):
		return warn("Insufficient stock.")
	case errors.Is(err, service.ErrNoSelection):
		return warn("Please select an item in the list.")
	default:
		return Notice{Level: LevelError, Title: "Error", Message: fmt.Sprintf("Error %s: %v", action, err)}
	}
}
