// README: Session event handlers; all guards live in the session itself.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carona/internal/modules/user"
)

type loginReq struct {
	Name string `json:"name"`
	// Password is accepted and ignored; login is a name lookup.
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := s.session.Login(req.Name); err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSnapshot(s.session.Snapshot()))
}

func (s *Server) handleLogout(c *gin.Context) {
	_ = s.session.Logout()
	c.JSON(http.StatusOK, toSnapshot(s.session.Snapshot()))
}

type roleReq struct {
	Role string `json:"role"`
}

func (s *Server) handleSelectRole(c *gin.Context) {
	var req roleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := s.session.SelectRole(user.Role(req.Role)); err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSnapshot(s.session.Snapshot()))
}

type vehicleReq struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	LicensePlate string `json:"license_plate"`
}

func (s *Server) handleRegisterVehicle(c *gin.Context) {
	var req vehicleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	v := user.Vehicle{Make: req.Make, Model: req.Model, Color: req.Color, LicensePlate: req.LicensePlate}
	if err := s.session.RegisterVehicle(v); err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSnapshot(s.session.Snapshot()))
}

func (s *Server) handleFindRide(c *gin.Context) {
	if err := s.session.FindRide(); err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSnapshot(s.session.Snapshot()))
}

type searchReq struct {
	Destination string `json:"destination"`
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := s.session.Search(req.Destination); err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, toSnapshot(s.session.Snapshot()))
}

type confirmReq struct {
	Payment string `json:"payment"`
}

func (s *Server) handleConfirm(c *gin.Context) {
	var req confirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := s.session.ConfirmRide(req.Payment); err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSnapshot(s.session.Snapshot()))
}

func (s *Server) handleCancel(c *gin.Context) {
	if err := s.session.CancelRide(); err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSnapshot(s.session.Snapshot()))
}

type rateReq struct {
	Stars int `json:"stars"`
}

func (s *Server) handleRate(c *gin.Context) {
	var req rateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := s.session.RateTrip(req.Stars); err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSnapshot(s.session.Snapshot()))
}

func (s *Server) handleNewSearch(c *gin.Context) {
	if err := s.session.NewSearch(); err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSnapshot(s.session.Snapshot()))
}

type offerReq struct {
	Destination string `json:"destination"`
	Seats       int    `json:"seats"`
}

func (s *Server) handleOffer(c *gin.Context) {
	var req offerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := s.session.OfferRide(req.Destination, req.Seats); err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSnapshot(s.session.Snapshot()))
}

type navigateReq struct {
	Screen string `json:"screen"`
}

func (s *Server) handleNavigate(c *gin.Context) {
	var req navigateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	var err error
	switch req.Screen {
	case "history":
		err = s.session.ShowHistory()
	case "offer_ride":
		err = s.session.ShowOfferForm()
	case "rides_report":
		err = s.session.ShowRidesReport()
	case "passenger_requests":
		err = s.session.ShowPassengerBoard()
	case "back":
		err = s.session.Back()
	default:
		writeError(c, http.StatusBadRequest, "unknown screen")
		return
	}
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSnapshot(s.session.Snapshot()))
}

func (s *Server) handleSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, toSnapshot(s.session.Snapshot()))
}

func (s *Server) handleHistory(c *gin.Context) {
	trips := s.session.History()
	out := make([]*tripDTO, len(trips))
	for i, t := range trips {
		out[i] = toTrip(t)
	}
	c.JSON(http.StatusOK, gin.H{"trips": out})
}

func (s *Server) handleOffers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"offers": toOffers(s.session.MyOffers())})
}

func (s *Server) handleRequests(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"requests": toRequests(s.session.PassengerRequests())})
}
